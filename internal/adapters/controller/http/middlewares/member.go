package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type memberService interface {
	Ensure(ctx context.Context, id, displayName, email string) error
	Get(ctx context.Context, id string) (*entity.User, error)
}

// Member creates the member on first sight and stores it under KeyUser.
// A member promoted to admin on the site is treated as admin even if the token says otherwise.
func Member(logger *types.Logger, members memberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := c.GetString(KeySub)
		if err := members.Ensure(c, sub, c.GetString(KeyName), c.GetString(KeyEmail)); err != nil {
			logger.Errorf("(user: %s) failed to ensure member: %v", sub, err)
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}
		user, err := members.Get(c, sub)
		if err != nil {
			logger.Errorf("(user: %s) failed to load member: %v", sub, err)
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}
		if user.IsAdmin() {
			c.Set(KeyRole, string(entity.RoleAdmin))
		}
		c.Set(KeyUser, user)
		c.Next()
	}
}
