package user

import "time"

// User is the persistence model for the users table. Email carries a plain
// index rather than a unique constraint; registration checks for an existing
// row before inserting. PasswordHash is nullable so accounts can exist
// before a password is set.
type User struct {
	ID           int64      `gorm:"primaryKey"`
	FirstName    *string    `gorm:"column:first_name"`
	LastName     *string    `gorm:"column:last_name"`
	Email        string     `gorm:"column:email;index;not null"`
	Role         string     `gorm:"column:role;not null"`
	PasswordHash *string    `gorm:"column:password_hash"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
