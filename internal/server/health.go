package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Version string `json:"version,omitempty"`
	Backend string `json:"backend"`
	Books   int    `json:"books"`
}

type HealthController struct {
	shelf   *Shelf
	backend string
	version string
}

func NewHealthController(shelf *Shelf, backend, version string) *HealthController {
	return &HealthController{shelf: shelf, backend: backend, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Backend: h.backend,
		Books:   h.shelf.Len(),
	})
}
