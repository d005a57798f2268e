package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var tagMessages = map[string]string{
	"required":  "is required",
	"email":     "must be a valid email address",
	"latitude":  "must be a valid latitude",
	"longitude": "must be a valid longitude",
	"oneof":     "is not an accepted value",
	"datetime":  "must be a valid date",
	"max":       "is too long",
	"min":       "is too short",
}

// ValidationMessage turns binding errors into one readable line such as
// "title is required; email must be a valid email address".
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msg, ok := tagMessages[e.Tag()]
			if !ok {
				msg = "is invalid"
			}
			parts = append(parts, fmt.Sprintf("%s %s", lowerFirst(e.Field()), msg))
		}
		return strings.Join(parts, "; ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return "malformed JSON body"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	return "invalid request body"
}

// BindJSON decodes and validates the body into v.
func BindJSON(ctx *gin.Context, v any) *Error {
	if err := ctx.ShouldBindJSON(v); err != nil {
		return NewError(http.StatusBadRequest, ValidationMessage(err))
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
