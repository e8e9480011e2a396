package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type PostStorage interface {
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Get(ctx context.Context, id string) (*entity.Post, error)
	GetBySlug(ctx context.Context, slug string, withDrafts bool) (*entity.Post, error)
	GetPublished(ctx context.Context, offset, limit int) ([]entity.Post, error)
	Update(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
}

type CommentStorage interface {
	Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	Get(ctx context.Context, id string) (*entity.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

type PostService struct {
	logger         *types.Logger
	postStorage    PostStorage
	commentStorage CommentStorage
	now            func() time.Time
}

func NewPostService(logger *types.Logger, postStorage PostStorage, commentStorage CommentStorage) *PostService {
	return &PostService{
		logger:         logger,
		postStorage:    postStorage,
		commentStorage: commentStorage,
		now:            time.Now,
	}
}

func (s *PostService) List(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	return s.postStorage.GetPublished(ctx, offset, limit)
}

// GetBySlug returns a published post.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	post, err := s.postStorage.GetBySlug(ctx, slug, false)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, authorID string, input dto.PostInput) (*entity.Post, error) {
	post := &entity.Post{AuthorID: authorID}
	s.apply(post, input)

	post, err := s.postStorage.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.logger.Infof("(user: %s) post created (post_id=%s)", authorID, post.ID)
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id string, input dto.PostInput) (*entity.Post, error) {
	post, err := s.postStorage.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	s.apply(post, input)
	return s.postStorage.Update(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return notFound(s.postStorage.Delete(ctx, id))
}

// apply copies input onto post. PublishedAt is set the first time the post goes live.
func (s *PostService) apply(post *entity.Post, input dto.PostInput) {
	post.Title = strings.TrimSpace(input.Title)
	post.Slug = input.Slug
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Body = input.Body
	post.CoverURL = input.CoverURL
	post.Published = input.Published
	if post.Published && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
}

// Comments lists the comments of a published post.
func (s *PostService) Comments(ctx context.Context, slug string) ([]entity.Comment, error) {
	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.commentStorage.GetByPostID(ctx, post.ID)
}

func (s *PostService) AddComment(ctx context.Context, slug, userID string, input dto.CommentInput) (*entity.Comment, error) {
	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.commentStorage.Create(ctx, &entity.Comment{
		PostID: post.ID,
		UserID: userID,
		Body:   strings.TrimSpace(input.Body),
	})
}

// DeleteComment removes a comment written by the user. Admins may remove any comment.
func (s *PostService) DeleteComment(ctx context.Context, id string, user *entity.User) error {
	comment, err := s.commentStorage.Get(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if comment.UserID != user.ID && !user.IsAdmin() {
		return errorz.ErrForbidden
	}
	if err = s.commentStorage.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.logger.Infof("(user: %s) comment deleted (comment_id=%s)", user.ID, id)
	return nil
}
