package permission

import "time"

// Permission is one authorization rule. The composite primary key makes the
// (role, action, resource) tuple unique by construction; rows are seeded
// once and afterwards only toggled via IsActive.
type Permission struct {
	Role      string    `gorm:"column:role;primaryKey"`
	Action    string    `gorm:"column:action;primaryKey"`
	Resource  string    `gorm:"column:resource;primaryKey"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}
