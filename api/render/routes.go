package render

import (
	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
)

// RegisterRoutes registers render routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Start(deps))
}
