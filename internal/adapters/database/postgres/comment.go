package postgres

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

type CommentStorage struct {
	db *gorm.DB
}

func NewCommentStorage(db *gorm.DB) *CommentStorage {
	return &CommentStorage{
		db: db,
	}
}

func (s *CommentStorage) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	err := s.db.WithContext(ctx).Omit("User").Create(comment).Error
	return comment, err
}

func (s *CommentStorage) Get(ctx context.Context, id string) (*entity.Comment, error) {
	var comment entity.Comment
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	return &comment, err
}

// GetByPostID returns the comments of a post with their authors, oldest first.
func (s *CommentStorage) GetByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *CommentStorage) Delete(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &entity.Comment{}, id)
}
