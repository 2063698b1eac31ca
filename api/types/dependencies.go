package types

import (
	"github.com/textwaves/censor-api/internal/database"
	"github.com/textwaves/censor-api/internal/progress"
	"github.com/textwaves/censor-api/internal/services/pipeline"
	"github.com/textwaves/censor-api/internal/services/tasks"
	"github.com/textwaves/censor-api/internal/session"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB           *database.DB
	Progress     *progress.Registry
	Sessions     *session.Store
	TaskService  tasks.TaskService
	Orchestrator *pipeline.Orchestrator
	UploadDir    string
}
