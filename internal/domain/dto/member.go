package dto

import (
	"time"

	"github.com/pubquiz-fans/site/internal/domain/entity"
)

// Member is the public view of a user, without contact details
type Member struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Role        entity.Role `json:"role"`
	Bio         string      `json:"bio,omitempty"`
	AvatarURL   string      `json:"avatarUrl,omitempty"`
}

func NewMemberFromEntity(user entity.User) Member {
	return Member{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
	}
}

type TelegramCode struct {
	Code      string    `json:"code"`
	Link      string    `json:"link,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}
