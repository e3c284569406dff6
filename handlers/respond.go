// Package handlers adapts HTTP requests onto the services and renders
// their results and errors as JSON.
package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"recipe-api/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report binding failures by JSON field name rather than Go field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError renders err as {"error", "details"?} with the status of its
// kind. Internal causes are only shown outside release mode.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperr.KindOf(err)
	body := gin.H{}
	var ae *apperr.Error
	switch {
	case kind == apperr.KindInternal:
		body["error"] = "Internal server error"
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}
	case errors.As(err, &ae):
		body["error"] = ae.Message
		if ae.Details != "" {
			body["details"] = ae.Details
		}
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), body)
}

// bindError turns a gin binding failure into InvalidInput.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.InvalidInput("Invalid request body").WithDetails(err.Error())
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describeField(fe))
	}
	return apperr.InvalidInput("Invalid request body").WithDetails(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
