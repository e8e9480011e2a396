package postgres

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

type PostStorage struct {
	db *gorm.DB
}

func NewPostStorage(db *gorm.DB) *PostStorage {
	return &PostStorage{
		db: db,
	}
}

func (s *PostStorage) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	err := s.db.WithContext(ctx).Create(post).Error
	return post, err
}

func (s *PostStorage) Get(ctx context.Context, id string) (*entity.Post, error) {
	var post entity.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	return &post, err
}

// GetBySlug returns a post by slug. Drafts are only returned when withDrafts is set.
func (s *PostStorage) GetBySlug(ctx context.Context, slug string, withDrafts bool) (*entity.Post, error) {
	var post entity.Post
	query := s.db.WithContext(ctx).Where("slug = ?", slug)
	if !withDrafts {
		query = query.Where("published = ?", true)
	}
	err := query.First(&post).Error
	return &post, err
}

// GetPublished returns published posts, newest first.
func (s *PostStorage) GetPublished(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *PostStorage) Update(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	err := s.db.WithContext(ctx).Save(post).Error
	return post, err
}

func (s *PostStorage) Delete(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &entity.Post{}, id)
}
