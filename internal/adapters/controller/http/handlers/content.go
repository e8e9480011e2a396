package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type postService interface {
	List(ctx context.Context, offset, limit int) ([]entity.Post, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	Create(ctx context.Context, authorID string, input dto.PostInput) (*entity.Post, error)
	Update(ctx context.Context, id string, input dto.PostInput) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
	Comments(ctx context.Context, slug string) ([]entity.Comment, error)
	AddComment(ctx context.Context, slug, userID string, input dto.CommentInput) (*entity.Comment, error)
	DeleteComment(ctx context.Context, id string, user *entity.User) error
}

type resultService interface {
	GetAll(ctx context.Context) ([]entity.Result, error)
	Create(ctx context.Context, input dto.ResultInput) (*entity.Result, error)
	Update(ctx context.Context, id string, input dto.ResultInput) (*entity.Result, error)
	Delete(ctx context.Context, id string) error
}

type albumService interface {
	GetAll(ctx context.Context) ([]entity.Album, error)
	Get(ctx context.Context, id string) (*entity.Album, error)
	Create(ctx context.Context, input dto.AlbumInput) (*entity.Album, error)
	Update(ctx context.Context, id string, input dto.AlbumInput) (*entity.Album, error)
	Delete(ctx context.Context, id string) error
}

// ContentHandler serves the articles, results and photo albums of the site.
type ContentHandler struct {
	logger  *types.Logger
	posts   postService
	results resultService
	albums  albumService
}

func NewContentHandler(logger *types.Logger, posts postService, results resultService, albums albumService) *ContentHandler {
	return &ContentHandler{logger: logger, posts: posts, results: results, albums: albums}
}

type commentResponse struct {
	ID        string     `json:"id"`
	Body      string     `json:"body"`
	CreatedAt string     `json:"createdAt"`
	Author    dto.Member `json:"author"`
}

func newCommentResponse(c entity.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.UTC().Format(timeLayout),
		Author:    dto.NewMemberFromEntity(c.User),
	}
}

// GET /api/posts
func (h *ContentHandler) ListPosts(c *gin.Context) {
	offset, limit := page(c)
	posts, err := h.posts.List(c.Request.Context(), offset, limit)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GET /api/posts/:slug
func (h *ContentHandler) GetPost(c *gin.Context) {
	post, err := h.posts.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// POST /api/admin/posts
func (h *ContentHandler) CreatePost(c *gin.Context) {
	var in dto.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.posts.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// PUT /api/admin/posts/:id
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var in dto.PostInput
	if err = c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.posts.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DELETE /api/admin/posts/:id
func (h *ContentHandler) DeletePost(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err = h.posts.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}

// GET /api/posts/:slug/comments
func (h *ContentHandler) ListComments(c *gin.Context) {
	comments, err := h.posts.Comments(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/posts/:slug/comments
func (h *ContentHandler) AddComment(c *gin.Context) {
	var in dto.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	comment, err := h.posts.AddComment(c.Request.Context(), c.Param("slug"), userID(c), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	comment.User = *currentUser(c)
	c.JSON(http.StatusCreated, newCommentResponse(*comment))
}

// DELETE /api/comments/:id
func (h *ContentHandler) DeleteComment(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err = h.posts.DeleteComment(c.Request.Context(), id, currentUser(c)); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}

// GET /api/results
func (h *ContentHandler) ListResults(c *gin.Context) {
	results, err := h.results.GetAll(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// POST /api/admin/results
func (h *ContentHandler) CreateResult(c *gin.Context) {
	var in dto.ResultInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.results.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// PUT /api/admin/results/:id
func (h *ContentHandler) UpdateResult(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var in dto.ResultInput
	if err = c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.results.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DELETE /api/admin/results/:id
func (h *ContentHandler) DeleteResult(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err = h.results.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}

// GET /api/albums
func (h *ContentHandler) ListAlbums(c *gin.Context) {
	albums, err := h.albums.GetAll(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

// GET /api/albums/:id
func (h *ContentHandler) GetAlbum(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	album, err := h.albums.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

// POST /api/admin/albums
func (h *ContentHandler) CreateAlbum(c *gin.Context) {
	var in dto.AlbumInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	album, err := h.albums.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, album)
}

// PUT /api/admin/albums/:id
func (h *ContentHandler) UpdateAlbum(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var in dto.AlbumInput
	if err = c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	album, err := h.albums.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

// DELETE /api/admin/albums/:id
func (h *ContentHandler) DeleteAlbum(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err = h.albums.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}
