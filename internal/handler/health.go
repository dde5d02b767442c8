package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports that the server is up.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health requests
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "Server is running"})
}
