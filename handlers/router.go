package handlers

import "github.com/gin-gonic/gin"

// RouterConfig tunes the middleware stack
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires every route onto a new gin engine
func NewRouter(catalog *CatalogHandler, chat *ChatHandler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), RequestLogger())

	// Health check endpoint
	r.GET("/health", catalog.Health)

	// API routes
	api := r.Group("/api", RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		// Catalog endpoints
		api.GET("/search", catalog.Search)
		api.GET("/sort-options", catalog.SortOptions)
		api.GET("/cities/:name", catalog.GetCity)
		api.GET("/judges/:name", catalog.GetJudge)
		api.GET("/faq", catalog.GetFAQ)

		// Chat endpoints
		api.POST("/chat/sessions", chat.StartSession)
		api.GET("/chat/sessions/:id", chat.GetSession)
		api.DELETE("/chat/sessions/:id", chat.EndSession)
		api.POST("/chat/sessions/:id/select", chat.SelectOption)
		api.POST("/chat/sessions/:id/back", chat.GoBack)
		api.POST("/chat/sessions/:id/restart", chat.Restart)
		api.PUT("/chat/sessions/:id/language", chat.ChangeLanguage)
	}
	return r
}
