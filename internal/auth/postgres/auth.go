package postgres

import (
	"time"

	"github.com/aditirto/identity-service/internal/auth"
	"github.com/aditirto/identity-service/internal/core/rbac"
	"gorm.io/gorm"

	permissionDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/permission"
	userDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByEmail(email string) (*auth.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("email = ?", email).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return fromDataModel(&dm), nil
}

func (r *Repository) CreateUser(u *auth.User) (*auth.User, error) {
	dm := &userDatamodel.User{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}
	if err := r.db.Create(dm).Error; err != nil {
		return nil, err
	}
	return fromDataModel(dm), nil
}

func (r *Repository) ActivateUser(userID int64) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now().UTC()}).Error
}

func (r *Repository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

// HasActivePermission is the O(1) authorization lookup against the composite
// primary key.
func (r *Repository) HasActivePermission(role rbac.Role, action rbac.Action, resource rbac.Resource) (bool, error) {
	var count int64
	err := r.db.Model(&permissionDatamodel.Permission{}).
		Where("role = ? AND action = ? AND resource = ? AND is_active = ?", string(role), string(action), string(resource), true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func fromDataModel(dm *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:           dm.ID,
		FirstName:    dm.FirstName,
		LastName:     dm.LastName,
		Email:        dm.Email,
		Role:         rbac.Role(dm.Role),
		PasswordHash: dm.PasswordHash,
		IsActive:     dm.IsActive,
		LastLogin:    dm.LastLogin,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
}
