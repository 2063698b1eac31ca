package progress

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
)

// Stream streams progress updates for a session over SSE
// @Summary      Stream processing progress
// @Description  Streams progress snapshots for a session as server-sent events until the pass reaches a terminal state, the client disconnects, or the maximum wait elapses. Terminal snapshots are the last event; the session's progress state is released afterwards.
// @Tags         progress
// @Produce      text/event-stream
// @Param        hash path string true "Video hash"
// @Success      200 {string} string "SSE stream of progress snapshots"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Router       /api/v1/progress/{hash} [get]
func Stream(deps *types.Dependencies, pollInterval, maxWait time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		// Sends the current snapshot and reports whether it was terminal
		send := func() bool {
			snapshot := deps.Progress.Get(hash)
			c.SSEvent("progress", snapshot)
			c.Writer.Flush()
			return snapshot.Terminal()
		}

		if send() {
			deps.Progress.Cleanup(hash)
			return
		}

		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		deadline := time.NewTimer(maxWait)
		defer deadline.Stop()

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case <-deadline.C:
				c.SSEvent("timeout", gin.H{"message": "Progress stream timed out"})
				c.Writer.Flush()
				return
			case <-ticker.C:
				if send() {
					deps.Progress.Cleanup(hash)
					return
				}
			}
		}
	}
}

// Cleanup releases the progress state for a session
// @Summary      Release progress state
// @Description  Removes the in-memory progress snapshot for a session. Used by clients that abandon a stream.
// @Tags         progress
// @Produce      json
// @Param        hash path string true "Video hash"
// @Success      200 {object} types.BaseResponse "Progress state released"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Router       /api/v1/progress/{hash} [delete]
func Cleanup(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}

		deps.Progress.Cleanup(hash)

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Progress state released",
		})
	}
}
