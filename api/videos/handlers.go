package videos

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/textwaves/censor-api/api/types"
	"github.com/textwaves/censor-api/internal/models"
	"github.com/textwaves/censor-api/internal/services/tasks"
)

// TaskView is the API shape of a video task, extended with whether the
// rendered artifact and the editable session still exist on disk
type TaskView struct {
	models.VideoTask
	FinalAvailable bool `json:"final_available"`
	CanResume      bool `json:"can_resume"`
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func toView(task models.VideoTask) TaskView {
	return TaskView{
		VideoTask:      task,
		FinalAvailable: task.FinalAvailable(fileExists),
		CanResume:      task.CanResume(fileExists),
	}
}

// List returns the owner's video tasks
// @Summary      List videos
// @Description  Returns the caller's non-deleted video tasks, newest first
// @Tags         videos
// @Produce      json
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {object} object{status=string,videos=[]TaskView,count=int} "Video tasks"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/videos [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := deps.TaskService.ListForOwner(c.Request.Context(), types.OwnerID(c))
		if err != nil {
			types.SendInternalError(c, "Failed to list videos")
			return
		}

		views := make([]TaskView, 0, len(list))
		for _, task := range list {
			views = append(views, toView(task))
		}

		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"videos": views,
			"count":  len(views),
		})
	}
}

// Get returns one video task
// @Summary      Get a video
// @Description  Returns one of the caller's video tasks. Soft-deleted tasks are included when include_deleted=true.
// @Tags         videos
// @Produce      json
// @Param        hash path string true "Video hash"
// @Param        include_deleted query bool false "Include soft-deleted tasks"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {object} object{status=string,video=TaskView} "Video task"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{hash} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}

		includeDeleted := c.Query("include_deleted") == "true"
		task, err := deps.TaskService.GetForOwner(c.Request.Context(), types.OwnerID(c), hash, includeDeleted)
		if err != nil {
			if tasks.IsNotFound(err) {
				types.SendNotFound(c, "Video not found")
				return
			}
			types.SendInternalError(c, "Failed to get video")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"video":  toView(*task),
		})
	}
}

// Download serves the rendered final video
// @Summary      Download the censored video
// @Description  Serves the rendered final video as an attachment named after the original upload with a _censored suffix
// @Tags         videos
// @Produce      video/mp4
// @Param        hash path string true "Video hash"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {file} file "Final video"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Failure      404 {object} types.ErrorResponse "Video not found or not rendered"
// @Router       /api/v1/videos/{hash}/download [get]
func Download(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}

		task, err := deps.TaskService.GetForOwner(c.Request.Context(), types.OwnerID(c), hash, false)
		if err != nil {
			types.SendNotFound(c, "Video not found")
			return
		}

		if !task.FinalAvailable(fileExists) {
			types.SendNotFound(c, "Rendered video not available")
			return
		}

		c.FileAttachment(task.FinalVideoPath, downloadName(task.OriginalFilename))
	}
}

// Delete soft-deletes a video task
// @Summary      Delete a video
// @Description  Soft-deletes one of the caller's video tasks. Deleting an already deleted task succeeds.
// @Tags         videos
// @Produce      json
// @Param        hash path string true "Video hash"
// @Param        X-Owner-ID header string false "Owner identifier"
// @Success      200 {object} types.BaseResponse "Video deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid hash"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Router       /api/v1/videos/{hash} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, ok := types.ParseVideoHash(c, "hash")
		if !ok {
			return
		}

		if err := deps.TaskService.MarkDeleted(c.Request.Context(), types.OwnerID(c), hash); err != nil {
			if tasks.IsNotFound(err) {
				types.SendNotFound(c, "Video not found")
				return
			}
			types.SendInternalError(c, "Failed to delete video")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Video deleted",
		})
	}
}

// downloadName derives the attachment filename from the original upload:
// the stem plus a _censored suffix, always as mp4
func downloadName(originalFilename string) string {
	stem := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	if stem == "" {
		stem = "video"
	}
	return stem + "_censored.mp4"
}
