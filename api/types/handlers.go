package types

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// Handler utility functions to reduce duplication across handlers

// OwnerHeader carries the opaque owner identifier that scopes the video
// listing endpoints
const OwnerHeader = "X-Owner-ID"

// DefaultOwner is used when a client sends no owner header
const DefaultOwner = "anonymous"

var videoHashPattern = regexp.MustCompile(`^[0-9a-f]{10}$`)

// OwnerID extracts the caller's owner identifier from the request
func OwnerID(c *gin.Context) string {
	if owner := c.GetHeader(OwnerHeader); owner != "" {
		return owner
	}
	return DefaultOwner
}

// ParseVideoHash extracts and validates the video hash URL parameter.
// Returns the hash and sends an error response if it is malformed.
func ParseVideoHash(c *gin.Context, paramName string) (string, bool) {
	hash := c.Param(paramName)
	if !videoHashPattern.MatchString(hash) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid " + paramName,
		})
		return "", false
	}
	return hash, true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// SendConflict sends a standardized conflict response
func SendConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendAccepted acknowledges a background processing pass
func SendAccepted(c *gin.Context, status, message, videoHash string) {
	c.JSON(http.StatusAccepted, AcceptedResponse{
		BaseResponse: BaseResponse{Status: status, Message: message},
		VideoHash:    videoHash,
		StreamURL:    "/api/v1/progress/" + videoHash,
	})
}
