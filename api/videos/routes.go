package videos

import (
	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
)

// RegisterRoutes registers video listing and download routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))
	router.GET("/:hash", Get(deps))
	router.GET("/:hash/download", Download(deps))
	router.DELETE("/:hash", Delete(deps))
}
