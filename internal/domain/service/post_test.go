package service

import (
	"context"
	"testing"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryPostStorage struct {
	posts map[string]*entity.Post
}

func (s *memoryPostStorage) Create(_ context.Context, post *entity.Post) (*entity.Post, error) {
	post.ID = "post-" + post.Slug
	cp := *post
	s.posts[post.ID] = &cp
	return post, nil
}

func (s *memoryPostStorage) Get(_ context.Context, id string) (*entity.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryPostStorage) GetBySlug(_ context.Context, slug string, withDrafts bool) (*entity.Post, error) {
	for _, p := range s.posts {
		if p.Slug == slug && (p.Published || withDrafts) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryPostStorage) GetPublished(_ context.Context, _, _ int) ([]entity.Post, error) {
	var out []entity.Post
	for _, p := range s.posts {
		if p.Published {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memoryPostStorage) Update(_ context.Context, post *entity.Post) (*entity.Post, error) {
	cp := *post
	s.posts[post.ID] = &cp
	return post, nil
}

func (s *memoryPostStorage) Delete(_ context.Context, id string) error {
	if _, ok := s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.posts, id)
	return nil
}

type memoryCommentStorage struct {
	comments map[string]*entity.Comment
}

func (s *memoryCommentStorage) Create(_ context.Context, c *entity.Comment) (*entity.Comment, error) {
	c.ID = "c-" + c.UserID
	cp := *c
	s.comments[c.ID] = &cp
	return c, nil
}

func (s *memoryCommentStorage) Get(_ context.Context, id string) (*entity.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memoryCommentStorage) GetByPostID(_ context.Context, postID string) ([]entity.Comment, error) {
	var out []entity.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memoryCommentStorage) Delete(_ context.Context, id string) error {
	delete(s.comments, id)
	return nil
}

func TestPostService(t *testing.T) {
	ctx := context.Background()
	posts := &memoryPostStorage{posts: map[string]*entity.Post{}}
	service := NewPostService(types.Nop(), posts, &memoryCommentStorage{comments: map[string]*entity.Comment{}})
	published := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return published }

	draft, err := service.Create(ctx, "admin", dto.PostInput{Title: "Season recap", Slug: "season-recap", Body: "# Hello"})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	_, err = service.GetBySlug(ctx, "season-recap")
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	post, err := service.Update(ctx, draft.ID, dto.PostInput{Title: "Season recap", Slug: "season-recap", Body: "# Hello", Published: true})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, published, *post.PublishedAt)

	service.now = func() time.Time { return published.Add(time.Hour) }
	post, err = service.Update(ctx, draft.ID, dto.PostInput{Title: "Season recap!", Slug: "season-recap", Body: "# Hi", Published: true})
	require.NoError(t, err)
	assert.Equal(t, published, *post.PublishedAt)

	t.Run("comments", func(t *testing.T) {
		comment, err := service.AddComment(ctx, "season-recap", "alice", dto.CommentInput{Body: "  Great night!  "})
		require.NoError(t, err)
		assert.Equal(t, "Great night!", comment.Body)

		err = service.DeleteComment(ctx, comment.ID, &entity.User{ID: "bob", Role: entity.RoleMember})
		assert.ErrorIs(t, err, errorz.ErrForbidden)

		require.NoError(t, service.DeleteComment(ctx, comment.ID, &entity.User{ID: "carol", Role: entity.RoleAdmin}))

		comments, err := service.Comments(ctx, "season-recap")
		require.NoError(t, err)
		assert.Empty(t, comments)

		_, err = service.AddComment(ctx, "missing", "alice", dto.CommentInput{Body: "hi"})
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, draft.ID))
		assert.ErrorIs(t, service.Delete(ctx, draft.ID), errorz.ErrNotFound)
	})
}
