package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

type HandlerFunc func(ctx *gin.Context) (any, *Error)

// Status lets a handler answer with something other than 200.
type Status struct {
	Code int
	Body any
}

func Created(body any) Status  { return Status{Code: http.StatusCreated, Body: body} }
func Accepted(body any) Status { return Status{Code: http.StatusAccepted, Body: body} }

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		if ctx.Writer.Written() {
			return
		}

		if s, ok := result.(Status); ok {
			ctx.JSON(s.Code, s.Body)
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
