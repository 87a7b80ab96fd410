package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/export", h.exportIncidents)
		incidents.GET("/summary", h.getSummary)
		incidents.GET("/rolling", h.getRolling)
	}

	api.GET("/filters/options", h.getFilterOptions)
	api.GET("/quality", h.getQuality)

	// Перезагрузка доступна только по API-ключу
	api.POST("/dataset/refresh", APIKeyAuthMiddleware(h.cfg, h.logger), h.refreshDataset)

	api.GET("/system/health", h.healthCheck)
}
