package preview

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/textwaves/censor-api/api/types"
	"github.com/textwaves/censor-api/internal/profanity"
	"github.com/textwaves/censor-api/internal/services/pipeline"
	"github.com/textwaves/censor-api/internal/services/tasks"
	"github.com/textwaves/censor-api/internal/session"
)

// requireOwnedTask verifies the caller owns the task for a fingerprint
// before any session data is touched. A missing or foreign task reads as
// not found, never as forbidden.
func requireOwnedTask(c *gin.Context, deps *types.Dependencies, videoHash string) bool {
	_, err := deps.TaskService.GetForOwner(c.Request.Context(), types.OwnerID(c), videoHash, false)
	if err != nil {
		if tasks.IsNotFound(err) {
			types.SendNotFound(c, "Video not found")
			return false
		}
		types.SendInternalError(c, "Failed to load video")
		return false
	}
	return true
}

// allowedExtensions lists the accepted upload container formats
var allowedExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// ProcessVideo accepts a video upload and starts the preview pass
// @Summary      Upload a video for processing
// @Description  Accepts a multipart video upload, fingerprints it and starts the transcription and censoring pass in the background. Re-uploading identical bytes resets the existing task instead of creating a new one.
// @Tags         preview
// @Accept       multipart/form-data
// @Produce      json
// @Param        video formData file true "Video file (mp4, mov, avi, mkv, webm)"
// @Param        forbidden_words formData string false "Forbidden words as JSON array or comma-separated string"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      202 {object} types.AcceptedResponse "Processing started"
// @Failure      400 {object} types.ErrorResponse "Invalid upload"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/preview/process [post]
func ProcessVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("video")
		if err != nil {
			types.SendBadRequest(c, "No video file provided")
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExtensions[ext] {
			types.SendBadRequest(c, "Unsupported video format: "+ext)
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			types.SendInternalError(c, "Failed to read upload")
			return
		}
		defer src.Close()

		// Spool the upload to disk while computing its fingerprint, then
		// move it to its content-addressed name
		tempPath := filepath.Join(deps.UploadDir, "upload_"+uuid.NewString()+".tmp")
		tmp, err := os.Create(tempPath)
		if err != nil {
			types.SendInternalError(c, "Failed to store upload")
			return
		}

		hash, err := pipeline.Fingerprint(io.TeeReader(src, tmp))
		closeErr := tmp.Close()
		if err != nil || closeErr != nil {
			os.Remove(tempPath)
			types.SendInternalError(c, "Failed to store upload")
			return
		}

		videoPath := filepath.Join(deps.UploadDir, "video_"+hash+ext)
		if err := os.Rename(tempPath, videoPath); err != nil {
			os.Remove(tempPath)
			types.SendInternalError(c, "Failed to store upload")
			return
		}

		err = deps.Orchestrator.SubmitPreview(c.Request.Context(), pipeline.PreviewRequest{
			OwnerID:        types.OwnerID(c),
			VideoHash:      hash,
			VideoPath:      videoPath,
			Filename:       filepath.Base(fileHeader.Filename),
			ForbiddenWords: types.ParseWordList(c.PostForm("forbidden_words")),
		})
		if err != nil {
			if errors.Is(err, pipeline.ErrAlreadyProcessing) {
				types.SendAccepted(c, types.StatusProcessing, "Video is already being processed", hash)
				return
			}
			types.SendInternalError(c, "Failed to start processing")
			return
		}

		types.SendAccepted(c, types.StatusProcessing, "Processing started", hash)
	}
}

// UpdateSubtitles edits a session's subtitles and forbidden words
// @Summary      Update session subtitles
// @Description  Stores the edited subtitles exactly as given and re-derives the beep intervals from the raw text. An empty forbidden-word list resets the session to the default words; a supplied beep_intervals list overrides the re-derived intervals.
// @Tags         preview
// @Accept       json
// @Produce      json
// @Param        request body types.UpdateSubtitlesRequest true "Edited subtitles and/or forbidden words"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {object} object{status=string,video_hash=string,subtitles=[]session.Subtitle,forbidden_words=[]string,beep_intervals=[]profanity.Interval} "Updated session"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Session not found"
// @Router       /api/v1/preview/subtitles [post]
func UpdateSubtitles(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.UpdateSubtitlesRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if !requireOwnedTask(c, deps, req.VideoHash) {
			return
		}

		update := pipeline.SessionUpdate{}
		if req.Subtitles != nil {
			subtitles := make([]session.Subtitle, 0, len(req.Subtitles))
			for _, subtitle := range req.Subtitles {
				subtitles = append(subtitles, session.Subtitle{
					ID:         subtitle.ID,
					Start:      subtitle.Start,
					End:        subtitle.End,
					Text:       subtitle.Text,
					RawText:    subtitle.RawText,
					Confidence: subtitle.Confidence,
				})
			}
			update.Subtitles = subtitles
		}
		if req.ForbiddenWords != nil {
			update.ForbiddenWords = []string(req.ForbiddenWords)
		}
		if req.BeepIntervals != nil {
			intervals := make([]profanity.Interval, 0, len(*req.BeepIntervals))
			for _, interval := range *req.BeepIntervals {
				intervals = append(intervals, profanity.Interval{Start: interval.Start, End: interval.End})
			}
			update.BeepIntervals = intervals
		}

		record, err := deps.Orchestrator.UpdateSession(c.Request.Context(), req.VideoHash, update)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				types.SendNotFound(c, "Session not found")
				return
			}
			types.SendInternalError(c, "Failed to update session")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":          types.StatusOK,
			"video_hash":      record.VideoHash,
			"subtitles":       record.Subtitles,
			"forbidden_words": record.ForbiddenWords,
			"beep_intervals":  record.BeepIntervals,
		})
	}
}

// GetSession returns the editable working data for a fingerprint
// @Summary      Get session data
// @Description  Returns the session's subtitles, forbidden words, beep intervals and video metadata. Scoped to the owning caller.
// @Tags         preview
// @Produce      json
// @Param        hash path string true "Video hash"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {object} object{status=string,video_hash=string,subtitles=[]session.Subtitle,video_info=session.VideoInfo,forbidden_words=[]string,beep_intervals=[]profanity.Interval} "Session data"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Failure      404 {object} types.ErrorResponse "Session not found"
// @Router       /api/v1/preview/session/{hash} [get]
func GetSession(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}
		if !requireOwnedTask(c, deps, hash) {
			return
		}

		record, err := deps.Sessions.Load(hash)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				types.SendNotFound(c, "Session not found")
				return
			}
			types.SendInternalError(c, "Failed to load session")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":          types.StatusOK,
			"video_hash":      record.VideoHash,
			"subtitles":       record.Subtitles,
			"video_info":      record.VideoInfo,
			"forbidden_words": record.ForbiddenWords,
			"beep_intervals":  record.BeepIntervals,
		})
	}
}

// GetVideo serves the uploaded source video for preview playback
// @Summary      Stream the source video
// @Description  Serves the uploaded source video of an active session for preview playback. Scoped to the owning caller.
// @Tags         preview
// @Produce      video/mp4
// @Param        hash path string true "Video hash"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {file} file "Source video"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Failure      404 {object} types.ErrorResponse "Session or video not found"
// @Router       /api/v1/preview/video/{hash} [get]
func GetVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}
		if !requireOwnedTask(c, deps, hash) {
			return
		}

		record, err := deps.Sessions.Load(hash)
		if err != nil {
			types.SendNotFound(c, "Session not found")
			return
		}

		if _, err := os.Stat(record.VideoPath); err != nil {
			types.SendNotFound(c, "Video file not found")
			return
		}

		c.File(record.VideoPath)
	}
}
