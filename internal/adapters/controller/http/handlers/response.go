package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pubquiz-fans/site/internal/adapters/controller/http/middlewares"
	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

const (
	timeLayout      = time.RFC3339
	defaultPageSize = 20
	maxPageSize     = 100
)

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

// fail maps a service error to its status code. Unknown errors are logged and hidden.
func fail(c *gin.Context, logger *types.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errorz.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errorz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errorz.ErrValidation),
		errors.Is(err, errorz.ErrInvalidStatus),
		errors.Is(err, errorz.ErrInvalidCode),
		errors.Is(err, errorz.ErrInvalidID):
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Errorf("(user: %s) %s %s: %v", userID(c), c.Request.Method, c.FullPath(), err)
		message = "internal error"
	}
	c.JSON(status, gin.H{"success": false, "error": message})
}

// idParam returns the :id path parameter in canonical UUID form.
func idParam(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", errorz.ErrInvalidID, c.Param("id"))
	}
	return id.String(), nil
}

func userID(c *gin.Context) string {
	return c.GetString(middlewares.KeySub)
}

func currentUser(c *gin.Context) *entity.User {
	v, _ := c.Get(middlewares.KeyUser)
	user, _ := v.(*entity.User)
	return user
}

// page reads ?page=1&page_size=20 into offset and limit.
func page(c *gin.Context) (offset, limit int) {
	p, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if p < 1 {
		p = 1
	}
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return (p - 1) * size, size
}
