package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/logging"
)

// response is the uniform envelope for every API reply.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// pagination is attached to list responses.
type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func newPagination(page, limit, total int) pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, response{Success: true, Message: message})
}

// handleError maps service errors onto the envelope. Unexpected errors
// never leak detail to clients in production.
func (h *Handlers) handleError(c *gin.Context, err error) {
	if err == apperrors.ErrNotFound {
		c.JSON(http.StatusNotFound, response{Success: false, Message: "Not found"})
		return
	}

	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Operational {
			c.JSON(appErr.StatusCode, response{Success: false, Message: appErr.Message})
			return
		}
	}

	h.logger.Error("Unhandled error", logging.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	})

	message := "Something went wrong"
	if !h.config.IsProduction() {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, response{Success: false, Message: message})
}

func (h *Handlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, response{Success: false, Message: message})
}
