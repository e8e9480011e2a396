package service

import (
	"context"

	"github.com/lib/pq"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
)

type AlbumStorage interface {
	Create(ctx context.Context, album *entity.Album) (*entity.Album, error)
	Get(ctx context.Context, id string) (*entity.Album, error)
	GetAll(ctx context.Context) ([]entity.Album, error)
	Update(ctx context.Context, album *entity.Album) (*entity.Album, error)
	Delete(ctx context.Context, id string) error
}

type AlbumService struct {
	storage AlbumStorage
}

func NewAlbumService(storage AlbumStorage) *AlbumService {
	return &AlbumService{
		storage: storage,
	}
}

func (s *AlbumService) GetAll(ctx context.Context) ([]entity.Album, error) {
	return s.storage.GetAll(ctx)
}

func (s *AlbumService) Get(ctx context.Context, id string) (*entity.Album, error) {
	album, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return album, nil
}

func (s *AlbumService) Create(ctx context.Context, input dto.AlbumInput) (*entity.Album, error) {
	album := &entity.Album{}
	applyAlbum(album, input)
	return s.storage.Create(ctx, album)
}

func (s *AlbumService) Update(ctx context.Context, id string, input dto.AlbumInput) (*entity.Album, error) {
	album, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyAlbum(album, input)
	return s.storage.Update(ctx, album)
}

func (s *AlbumService) Delete(ctx context.Context, id string) error {
	return notFound(s.storage.Delete(ctx, id))
}

// applyAlbum copies input onto album. The first photo is the cover when none is given.
func applyAlbum(album *entity.Album, input dto.AlbumInput) {
	album.Title = input.Title
	album.Date = input.Date.UTC()
	album.PhotoURLs = pq.StringArray(input.PhotoURLs)
	album.CoverURL = input.CoverURL
	if album.CoverURL == "" && len(input.PhotoURLs) > 0 {
		album.CoverURL = input.PhotoURLs[0]
	}
}
