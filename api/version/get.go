package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary      Service version
// @Description  Returns the service name and version
// @Tags         version
// @Produce      json
// @Success      200 {object} object{name=string,version=string,description=string,status=string} "Service info"
// @Router       /version [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "TextWaves Censor API",
			"version":     "1.0.0",
			"description": "API for transcribing, censoring and rendering videos",
			"status":      "running",
		})
	}
}
