package postgres

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

type AlbumStorage struct {
	db *gorm.DB
}

func NewAlbumStorage(db *gorm.DB) *AlbumStorage {
	return &AlbumStorage{
		db: db,
	}
}

func (s *AlbumStorage) Create(ctx context.Context, album *entity.Album) (*entity.Album, error) {
	err := s.db.WithContext(ctx).Create(album).Error
	return album, err
}

func (s *AlbumStorage) Get(ctx context.Context, id string) (*entity.Album, error) {
	var album entity.Album
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&album).Error
	return &album, err
}

// GetAll returns every album, latest first.
func (s *AlbumStorage) GetAll(ctx context.Context) ([]entity.Album, error) {
	var albums []entity.Album
	err := s.db.WithContext(ctx).Order("date DESC").Find(&albums).Error
	return albums, err
}

func (s *AlbumStorage) Update(ctx context.Context, album *entity.Album) (*entity.Album, error) {
	err := s.db.WithContext(ctx).Save(album).Error
	return album, err
}

func (s *AlbumStorage) Delete(ctx context.Context, id string) error {
	return deleteByID(s.db.WithContext(ctx), &entity.Album{}, id)
}
