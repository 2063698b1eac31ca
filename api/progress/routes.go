package progress

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
)

// RegisterRoutes registers progress streaming routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, pollInterval, maxWait time.Duration) {
	router.GET("/:hash", Stream(deps, pollInterval, maxWait))
	router.DELETE("/:hash", Cleanup(deps))
}
