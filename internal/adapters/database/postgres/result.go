package postgres

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

type ResultStorage struct {
	db *gorm.DB
}

func NewResultStorage(db *gorm.DB) *ResultStorage {
	return &ResultStorage{
		db: db,
	}
}

func (s *ResultStorage) Create(ctx context.Context, result *entity.Result) (*entity.Result, error) {
	err := s.db.WithContext(ctx).Create(result).Error
	return result, err
}

func (s *ResultStorage) Get(ctx context.Context, id string) (*entity.Result, error) {
	var result entity.Result
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	return &result, err
}

// GetAll returns every result, latest quiz first.
func (s *ResultStorage) GetAll(ctx context.Context) ([]entity.Result, error) {
	var results []entity.Result
	err := s.db.WithContext(ctx).Order("date DESC").Find(&results).Error
	return results, err
}

func (s *ResultStorage) Update(ctx context.Context, result *entity.Result) (*entity.Result, error) {
	err := s.db.WithContext(ctx).Save(result).Error
	return result, err
}

func (s *ResultStorage) Delete(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &entity.Result{}, id)
}
