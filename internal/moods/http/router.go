package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.PUT("/moods/:year/:month/:day", h.RecordMood)
	rg.GET("/moods/:year/:month/:day", h.GetMood)
	rg.GET("/moods/:year/:month", h.GetMonth)
	rg.GET("/calendar/:year", h.GetCalendar)
	rg.GET("/stats/:year/:month", h.GetStats)
	rg.GET("/stats/:year/:month/chart.svg", h.GetChartSVG)
}
