package rest

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
)

// Response wraps every successful payload.
type Response struct {
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Status: "success", Data: data, Timestamp: time.Now().UTC()})
}

func abort(c *gin.Context, status int, code errors.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code.String(), Message: message})
}

// fail maps a usecase error onto an HTTP status. Server side failures get a
// generic message so causes from storage or upstream never leak.
func fail(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	status := statusOf(code)

	if code == "" {
		code = errors.GeneralInternalServerError
	}

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = publicMessage(err)
	}

	_ = c.Error(err)
	abort(c, status, code, message)
}

func statusOf(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidInput, errors.GeneralBadRequestError:
		return http.StatusBadRequest
	case errors.GeneralUnauthorizedError:
		return http.StatusUnauthorized
	case errors.QuoteNotFound, errors.GeneralNotFoundError:
		return http.StatusNotFound
	case errors.QuoteUnavailable, errors.QuoteTransient, errors.QuoteRateLimited, errors.StorageFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	var base *errors.BaseError
	if stderrors.As(err, &base) {
		return base.Error()
	}

	var details *errors.ErrorDetails
	if stderrors.As(err, &details) {
		return details.Message
	}
	return err.Error()
}
