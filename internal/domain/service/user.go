package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

// TelegramCodeTTL is how long a link code stays valid.
const TelegramCodeTTL = 15 * time.Minute

type UserStorage interface {
	EnsureExists(ctx context.Context, user *entity.User) error
	Get(ctx context.Context, id string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	GetRoster(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	SetTelegramChatID(ctx context.Context, id string, chatID int64) error
}

type linkCodeStorage interface {
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Consume(ctx context.Context, code string) (string, error)
}

type UserService struct {
	logger      *types.Logger
	userStorage UserStorage
	codes       linkCodeStorage
	botUsername string

	known sync.Map
}

func NewUserService(logger *types.Logger, userStorage UserStorage, codes linkCodeStorage, botUsername string) *UserService {
	return &UserService{
		logger:      logger,
		userStorage: userStorage,
		codes:       codes,
		botUsername: botUsername,
	}
}

// Ensure creates the member on their first authenticated request.
func (s *UserService) Ensure(ctx context.Context, id, displayName, email string) error {
	if _, ok := s.known.Load(id); ok {
		return nil
	}
	if strings.TrimSpace(displayName) == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}
	if displayName == "" {
		displayName = "Member"
	}

	err := s.userStorage.EnsureExists(ctx, &entity.User{
		ID:          id,
		DisplayName: displayName,
		Email:       email,
		Role:        entity.RoleMember,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	s.known.Store(id, struct{}{})
	return nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// UpdateProfile changes the public profile of the member.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input dto.ProfileInput) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.DisplayName = strings.TrimSpace(input.DisplayName)
	user.Bio = strings.TrimSpace(input.Bio)
	user.AvatarURL = input.AvatarURL
	return s.userStorage.Update(ctx, user)
}

// Roster returns the members shown on the team page.
func (s *UserService) Roster(ctx context.Context) ([]dto.Member, error) {
	users, err := s.userStorage.GetRoster(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]dto.Member, 0, len(users))
	for _, u := range users {
		members = append(members, dto.NewMemberFromEntity(u))
	}
	return members, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.userStorage.GetAll(ctx)
}

// UpdateMember changes the role and roster flag of a member.
func (s *UserService) UpdateMember(ctx context.Context, id string, input dto.MemberUpdate) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = entity.Role(input.Role)
	user.OnRoster = input.OnRoster

	user, err = s.userStorage.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("(user: %s) role set to %s", id, user.Role)
	return user, nil
}

// IssueTelegramCode creates a code the member sends to the bot, and the deep link that sends it.
func (s *UserService) IssueTelegramCode(ctx context.Context, id string) (*dto.TelegramCode, error) {
	code, err := s.codes.Issue(ctx, id, TelegramCodeTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue telegram code: %w", err)
	}
	out := &dto.TelegramCode{
		Code:      code,
		ExpiresAt: time.Now().Add(TelegramCodeTTL),
	}
	if s.botUsername != "" {
		out.Link = fmt.Sprintf("https://t.me/%s?start=%s", s.botUsername, code)
	}
	return out, nil
}

// LinkTelegram attaches chatID to the member the code was issued to.
func (s *UserService) LinkTelegram(ctx context.Context, code string, chatID int64) (*entity.User, error) {
	userID, err := s.codes.Consume(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if err = s.userStorage.SetTelegramChatID(ctx, userID, chatID); err != nil {
		return nil, notFound(err)
	}
	s.logger.Infof("(user: %s) linked telegram chat %d", userID, chatID)
	return s.Get(ctx, userID)
}
