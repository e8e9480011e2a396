package service

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
)

type ResultStorage interface {
	Create(ctx context.Context, result *entity.Result) (*entity.Result, error)
	Get(ctx context.Context, id string) (*entity.Result, error)
	GetAll(ctx context.Context) ([]entity.Result, error)
	Update(ctx context.Context, result *entity.Result) (*entity.Result, error)
	Delete(ctx context.Context, id string) error
}

type ResultService struct {
	storage ResultStorage
}

func NewResultService(storage ResultStorage) *ResultService {
	return &ResultService{
		storage: storage,
	}
}

func (s *ResultService) GetAll(ctx context.Context) ([]entity.Result, error) {
	return s.storage.GetAll(ctx)
}

func (s *ResultService) Create(ctx context.Context, input dto.ResultInput) (*entity.Result, error) {
	result := &entity.Result{}
	applyResult(result, input)
	return s.storage.Create(ctx, result)
}

func (s *ResultService) Update(ctx context.Context, id string, input dto.ResultInput) (*entity.Result, error) {
	result, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	applyResult(result, input)
	return s.storage.Update(ctx, result)
}

func (s *ResultService) Delete(ctx context.Context, id string) error {
	return notFound(s.storage.Delete(ctx, id))
}

func applyResult(result *entity.Result, input dto.ResultInput) {
	result.Date = input.Date.UTC()
	result.Venue = input.Venue
	result.Position = input.Position
	result.Teams = input.Teams
	result.Score = input.Score
	result.MaxScore = input.MaxScore
	result.EventID = input.EventID
}
