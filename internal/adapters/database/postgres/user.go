package postgres

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// EnsureExists inserts the user on first sign-in and leaves an existing row untouched.
func (s *UserStorage) EnsureExists(ctx context.Context, user *entity.User) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user).Error
}

func (s *UserStorage) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return &user, err
}

// GetAll returns every member, alphabetically.
func (s *UserStorage) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Order("display_name ASC").Find(&users).Error
	return users, err
}

// GetRoster returns the members shown on the team page.
func (s *UserStorage) GetRoster(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Where("on_roster = ?", true).Order("display_name ASC").Find(&users).Error
	return users, err
}

func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Save(user).Error
	return user, err
}

// SetTelegramChatID links a Telegram chat to the user.
func (s *UserStorage) SetTelegramChatID(ctx context.Context, id string, chatID int64) error {
	res := s.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("telegram_chat_id", chatID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
