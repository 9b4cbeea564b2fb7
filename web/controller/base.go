// Package controller provides the HTTP request handlers of the content API.
// Controllers bind and validate input, delegate to the service layer and
// shape every response into the shared envelope.
package controller

import (
	"errors"
	"net/http"

	"github.com/lukafrizz/content-api/config"
	"github.com/lukafrizz/content-api/logger"
	"github.com/lukafrizz/content-api/web/entity"
	"github.com/lukafrizz/content-api/web/middleware"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// jsonData sends a success envelope with a message and payload.
func jsonData(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, entity.Msg{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// jsonMsg sends a success envelope carrying only a message.
func jsonMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.Msg{Success: true, Message: msg})
}

// jsonError sends a failure envelope with the given status.
func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, entity.Msg{Success: false, Message: msg})
}

// jsonBindError reports a binding failure as a 400 with field-level detail
// when the underlying error carries it.
func jsonBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]entity.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, entity.FieldError{
				Field:   fe.Field(),
				Message: "failed on '" + fe.Tag() + "' validation",
			})
		}
		c.JSON(http.StatusBadRequest, entity.Msg{
			Success: false,
			Message: "validation error",
			Errors:  fields,
		})
		return
	}
	jsonError(c, http.StatusBadRequest, "malformed request body")
}

// jsonServiceError maps a service error to an HTTP status. Unexpected errors
// are logged and surfaced generically unless running in debug mode.
func jsonServiceError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		jsonError(c, http.StatusNotFound, msg+" not found")
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidCurrency),
		errors.Is(err, service.ErrInvalidBucket),
		errors.Is(err, service.ErrInvalidFilename):
		jsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		jsonError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnsupportedMediaType):
		jsonError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrPayloadTooLarge):
		jsonError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		logger.Error(msg+" failed:", err)
		detail := "internal server error"
		if config.IsDebug() {
			detail = err.Error()
		}
		jsonError(c, http.StatusInternalServerError, detail)
	}
}

// currentUserID returns the authenticated account id set by the auth middleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt(middleware.CtxUserID)
}
