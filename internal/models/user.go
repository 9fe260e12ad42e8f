package models

import "time"

// DefaultRole is assigned to every newly registered user.
const DefaultRole = "user"

// User represents a registered customer or administrator.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserName  string    `json:"userName" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role      string    `json:"role" gorm:"type:varchar(32);default:user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
