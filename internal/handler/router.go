package handler

import (
	_ "tacitus-api/docs"
	"tacitus-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the middleware and every route. When apiKey is set, /api routes other
// than health require it.
func NewRouter(logger zerolog.Logger, apiKey string, query *QueryHandler, locations *LocationHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(logger), middleware.Logger(), gin.Recovery())

	r.GET("/health", Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", Health)

	protected := api.Group("", middleware.APIKey(apiKey))
	protected.POST("/query", query.Query)
	protected.POST("/search-location", locations.SearchLocation)
	protected.GET("/locations", locations.ListLocations)
	protected.GET("/locations/:id", locations.GetLocation)

	return r
}
