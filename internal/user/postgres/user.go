package postgres

import (
	"time"

	"github.com/aditirto/identity-service/internal/user"
	"gorm.io/gorm"

	userDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

// UpdateProfile only touches columns whose new value is non-nil, giving the
// PATCH endpoint its partial-update semantics.
func (r *UserRepository) UpdateProfile(userID int64, firstName, lastName *string) (*user.User, error) {
	updates := map[string]interface{}{}
	if firstName != nil {
		updates["first_name"] = *firstName
	}
	if lastName != nil {
		updates["last_name"] = *lastName
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		err := r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(userID)
}

func (r *UserRepository) Deactivate(userID int64) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()}).Error
}
