package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
)

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an operation error to its HTTP status.
func statusFor(err error) int {
	var valErr *cli.ValidationError
	var nfErr *cli.NotFoundError
	switch {
	case errors.As(err, &valErr), errors.Is(err, model.ErrInvalidID):
		return http.StatusBadRequest
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status statusFor picks.
// Internal errors are logged and hidden from the client.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), RequestID: RequestIDFrom(c)}

	var valErr *cli.ValidationError
	if errors.As(err, &valErr) {
		resp.Field = valErr.Field
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", resp.RequestID,
			"error", err)
		resp.Error = "internal server error"
	}

	c.AbortWithStatusJSON(status, resp)
}

// bookID parses the :id path parameter.
func bookID(c *gin.Context) (int64, error) {
	return model.ParseID(c.Param("id"))
}
