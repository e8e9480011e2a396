// Package validator holds the custom rules used in request bindings.
package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pubquiz-fans/site/internal/domain/entity"
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Register adds the rules to v:
//
//	notblank   - string with at least one non-space character
//	slug       - lower-case words joined by single dashes
//	rsvp       - one of going, maybe, not_going
//	memberrole - member or admin
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"notblank":   NotBlank,
		"slug":       Slug,
		"rsvp":       ParticipationStatus,
		"memberrole": MemberRole,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func Slug(fl validator.FieldLevel) bool {
	return slugRegexp.MatchString(fl.Field().String())
}

func ParticipationStatus(fl validator.FieldLevel) bool {
	return entity.ParticipationStatus(fl.Field().String()).Valid()
}

func MemberRole(fl validator.FieldLevel) bool {
	switch entity.Role(fl.Field().String()) {
	case entity.RoleMember, entity.RoleAdmin:
		return true
	}
	return false
}
