// Package progress holds the ephemeral, process-wide registry of the latest
// progress snapshot per session. It exists only to feed sub-second polling by
// the streaming endpoint; durable status lives in the video task record.
package progress

import "sync"

// Snapshot is the latest progress state for one session. Each update
// overwrites the previous snapshot, no history is kept.
type Snapshot struct {
	Stage    string  `json:"stage"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
	Error    *string `json:"error"`
}

// Terminal reports whether no further updates should be expected
func (s Snapshot) Terminal() bool {
	return s.Progress >= 100 || s.Error != nil
}

// Registry is a thread-safe keyed store of progress snapshots. It is an
// injected service: constructed at process start and passed explicitly to
// the orchestrator and the streaming handlers.
type Registry struct {
	mu    sync.Mutex
	state map[string]Snapshot
}

// NewRegistry creates an empty progress registry
func NewRegistry() *Registry {
	return &Registry{state: make(map[string]Snapshot)}
}

// Init starts progress tracking for a session
func (r *Registry) Init(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[id] = Snapshot{
		Stage:    "starting",
		Progress: 0,
		Message:  "Starting processing...",
	}
}

// Update overwrites the snapshot for a session, clamping progress to [0,100].
// Updating an untracked session implicitly starts tracking it.
func (r *Registry) Update(id, stage string, progress float64, message string) {
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[id] = Snapshot{
		Stage:    stage,
		Progress: progress,
		Message:  message,
	}
}

// SetError marks a tracked session as failed, keeping its last stage and
// progress so observers see where the pipeline stopped
func (r *Registry) SetError(id, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot, ok := r.state[id]
	if !ok {
		return
	}
	snapshot.Error = &message
	r.state[id] = snapshot
}

// Get returns the current snapshot for a session. Unknown sessions return a
// well-defined "unknown" snapshot rather than an error.
func (r *Registry) Get(id string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snapshot, ok := r.state[id]; ok {
		return snapshot
	}
	return Snapshot{
		Stage:    "unknown",
		Progress: 0,
		Message:  "Unknown session",
	}
}

// Cleanup removes a session from the registry. Safe to call for untracked ids.
func (r *Registry) Cleanup(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, id)
}
