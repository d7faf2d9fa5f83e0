package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	if handler.telemetry != nil {
		router.GET("/metrics", gin.WrapH(handler.telemetry.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Engine endpoints
		v1.POST("/resolve", handler.Resolve)   // POST /api/v1/resolve
		v1.POST("/validate", handler.Validate) // POST /api/v1/validate
		v1.POST("/generate", handler.Generate) // POST /api/v1/generate
		v1.POST("/analyze", handler.Analyze)   // POST /api/v1/analyze

		// Generated code review endpoints
		generated := v1.Group("/generated")
		{
			generated.GET("", handler.ListGeneratedCode)    // GET /api/v1/generated
			generated.GET("/:id", handler.GetGeneratedCode) // GET /api/v1/generated/:id
		}

		// Brand management endpoints
		brands := v1.Group("/brands")
		{
			brands.GET("", handler.ListBrands)          // GET /api/v1/brands
			brands.POST("", handler.CreateBrand)        // POST /api/v1/brands
			brands.GET("/:id", handler.GetBrand)        // GET /api/v1/brands/:id
			brands.PUT("/:id", handler.UpdateBrand)     // PUT /api/v1/brands/:id
			brands.DELETE("/:id", handler.DeleteBrand)  // DELETE /api/v1/brands/:id
		}

		// Selector catalog endpoints
		selectors := v1.Group("/selectors")
		{
			selectors.GET("", handler.ListSelectors)          // GET /api/v1/selectors
			selectors.POST("", handler.CreateSelector)        // POST /api/v1/selectors
			selectors.PUT("/:id", handler.UpdateSelector)     // PUT /api/v1/selectors/:id
			selectors.DELETE("/:id", handler.DeleteSelector)  // DELETE /api/v1/selectors/:id
		}

		// Rule management endpoints
		rules := v1.Group("/rules")
		{
			rules.GET("", handler.ListRules)         // GET /api/v1/rules
			rules.POST("", handler.CreateRule)       // POST /api/v1/rules
			rules.PUT("/:id", handler.UpdateRule)    // PUT /api/v1/rules/:id
			rules.DELETE("/:id", handler.DeleteRule) // DELETE /api/v1/rules/:id
		}

		// Template management endpoints
		templates := v1.Group("/templates")
		{
			templates.GET("", handler.ListTemplates)          // GET /api/v1/templates
			templates.POST("", handler.CreateTemplate)        // POST /api/v1/templates
			templates.PUT("/:id", handler.UpdateTemplate)     // PUT /api/v1/templates/:id
			templates.DELETE("/:id", handler.DeleteTemplate)  // DELETE /api/v1/templates/:id
		}
	}
}
