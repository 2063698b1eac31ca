package preview

import (
	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
)

// RegisterRoutes registers upload and preview routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/process", ProcessVideo(deps))
	router.POST("/subtitles", UpdateSubtitles(deps))
	router.GET("/session/:hash", GetSession(deps))
	router.GET("/video/:hash", GetVideo(deps))
}
