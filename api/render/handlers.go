package render

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
	"github.com/textwaves/censor-api/internal/profanity"
	"github.com/textwaves/censor-api/internal/services/pipeline"
	"github.com/textwaves/censor-api/internal/services/tasks"
	"github.com/textwaves/censor-api/internal/session"
)

// Start kicks off the final render pass for a session
// @Summary      Render the final video
// @Description  Starts the render pass over an existing session: beeps the audio, burns the subtitles and produces the final artifact. A supplied forbidden_words list recomputes the intervals first; a supplied beep_intervals list replaces the intervals wholesale, including an empty list meaning no beeps.
// @Tags         render
// @Accept       json
// @Produce      json
// @Param        request body types.RenderRequest true "Render request"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      202 {object} types.AcceptedResponse "Render started"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Session not found"
// @Failure      409 {object} types.ErrorResponse "Already processing"
// @Router       /api/v1/render [post]
func Start(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.RenderRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		renderReq := pipeline.RenderRequest{
			OwnerID:   types.OwnerID(c),
			VideoHash: req.VideoHash,
		}
		if req.ForbiddenWords != nil {
			renderReq.ForbiddenWords = []string(req.ForbiddenWords)
		}
		if req.BeepIntervals != nil {
			intervals := make([]profanity.Interval, 0, len(*req.BeepIntervals))
			for _, interval := range *req.BeepIntervals {
				intervals = append(intervals, profanity.Interval{Start: interval.Start, End: interval.End})
			}
			renderReq.BeepIntervals = intervals
		}

		if err := deps.Orchestrator.SubmitRender(c.Request.Context(), renderReq); err != nil {
			switch {
			case errors.Is(err, session.ErrSessionNotFound):
				types.SendNotFound(c, "Session not found")
			case tasks.IsNotFound(err):
				types.SendNotFound(c, "Video not found")
			case errors.Is(err, pipeline.ErrAlreadyProcessing):
				types.SendConflict(c, "Video is already being processed")
			default:
				types.SendInternalError(c, "Failed to start render")
			}
			return
		}

		types.SendAccepted(c, types.StatusRendering, "Render started", req.VideoHash)
	}
}
