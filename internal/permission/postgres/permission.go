package postgres

import (
	"time"

	"github.com/aditirto/identity-service/internal/permission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	permissionDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/permission"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func applyFilter(tx *gorm.DB, filter permission.Filter) *gorm.DB {
	if filter.Role != nil {
		tx = tx.Where("role = ?", string(*filter.Role))
	}
	if filter.Action != nil {
		tx = tx.Where("action = ?", string(*filter.Action))
	}
	if filter.Resource != nil {
		tx = tx.Where("resource = ?", string(*filter.Resource))
	}
	return tx
}

func (r *PermissionRepository) GetAll(filter permission.Filter) ([]*permission.Permission, error) {
	var rows []*permissionDatamodel.Permission
	tx := applyFilter(r.db.Model(&permissionDatamodel.Permission{}), filter)
	if err := tx.Order("role ASC, resource ASC, action ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	perms := make([]*permission.Permission, 0, len(rows))
	for _, row := range rows {
		perms = append(perms, permission.FromDataModel(row))
	}
	return perms, nil
}

// UpdateStatus toggles every row matching the filter. An empty filter means
// the whole table, which gorm only permits with an explicit session flag.
func (r *PermissionRepository) UpdateStatus(filter permission.Filter, isActive bool) ([]*permission.Permission, error) {
	tx := applyFilter(r.db.Model(&permissionDatamodel.Permission{}), filter)
	if filter.Role == nil && filter.Action == nil && filter.Resource == nil {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	err := tx.Updates(map[string]interface{}{"is_active": isActive, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return nil, err
	}
	return r.GetAll(filter)
}

// SeedMatrix inserts rows with ON CONFLICT DO NOTHING on the composite key,
// returning how many rows were actually created.
func (r *PermissionRepository) SeedMatrix(rows []*permission.Permission) (int64, error) {
	dms := make([]*permissionDatamodel.Permission, 0, len(rows))
	now := time.Now().UTC()
	for _, p := range rows {
		dms = append(dms, &permissionDatamodel.Permission{
			Role:      string(p.Role),
			Action:    string(p.Action),
			Resource:  string(p.Resource),
			IsActive:  p.IsActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}, {Name: "action"}, {Name: "resource"}},
		DoNothing: true,
	}).Create(&dms)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
