package models

import "time"

// User is an agency account allowed to sign in to the back office.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"column:email;size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"` // bcrypt, never exposed
	Role         string    `gorm:"column:role;size:20;not null;default:agent" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
}

func (User) TableName() string { return "user" }

// PublicUser is the profile returned to clients.
type PublicUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

// AuthToken is an opaque session token. A user holds at most one.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"column:token;size:64;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UserID    uint      `gorm:"column:user_id;index;not null"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
}

func (AuthToken) TableName() string { return "auth_token" }
