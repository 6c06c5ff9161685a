package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/feelio/feelio-backend/config"
)

func SetGinMode(app *config.AppConfig) {
	if app.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
}
