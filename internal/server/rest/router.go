package rest

import (
	"github.com/dmitrijs2005/phototranslate/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(h *Handlers, l logging.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = h.maxUploadBytes

	r.Use(requestID(), requestLogger(l), recovery(l))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/translate", h.Translate)

	authorized := api.Group("/translations", bearerAuth(h.users, l))
	authorized.POST("", h.SaveTranslation)
	authorized.GET("", h.ListTranslations)

	return r
}
