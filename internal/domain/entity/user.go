package entity

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is a team member. ID is the subject issued by the auth provider.
type User struct {
	ID             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DisplayName    string `gorm:"not null"`
	Email          string `gorm:"index"`
	Role           Role   `gorm:"not null;default:member"`
	Bio            string
	AvatarURL      string
	OnRoster       bool
	TelegramChatID int64
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
