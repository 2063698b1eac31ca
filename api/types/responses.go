package types

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusProcessing = "processing"
	StatusRendering  = "rendering"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// AcceptedResponse acknowledges a processing pass that runs in the
// background. StreamURL is where progress for the pass is streamed.
type AcceptedResponse struct {
	BaseResponse
	VideoHash string `json:"video_hash"`
	StreamURL string `json:"stream_url"`
}
