package dictsync

// Phase names a synchronization state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseImporting Phase = "importing"
	PhaseReady     Phase = "ready"
	PhaseFailed    Phase = "failed"
)

// Progress counts resolved words during an import.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// State is one of Idle, Loading, Importing, Ready or Failed. Only the
// variants below implement it, so impossible flag combinations (loading and
// initialized at once, say) cannot be built.
type State interface {
	Phase() Phase
	isState()
}

// Idle: nothing loaded yet.
type Idle struct{}

// Loading: fetching phrases and checking the cache.
type Loading struct{}

// Importing: resolving new words; the word set already holds placeholders.
type Importing struct {
	Progress Progress
}

// Ready: the word set is complete.
type Ready struct{}

// Failed: the last sync failed. It behaves like Idle for the next Load.
type Failed struct {
	Message string
}

func (Idle) Phase() Phase      { return PhaseIdle }
func (Loading) Phase() Phase   { return PhaseLoading }
func (Importing) Phase() Phase { return PhaseImporting }
func (Ready) Phase() Phase     { return PhaseReady }
func (Failed) Phase() Phase    { return PhaseFailed }

func (Idle) isState()      {}
func (Loading) isState()   {}
func (Importing) isState() {}
func (Ready) isState()     {}
func (Failed) isState()    {}

// IsLoading reports whether phrases are being fetched or the cache checked.
func IsLoading(s State) bool {
	_, ok := s.(Loading)
	return ok
}

// IsImporting reports whether new words are being resolved, with progress.
func IsImporting(s State) (Progress, bool) {
	imp, ok := s.(Importing)
	return imp.Progress, ok
}

// IsInitialized reports whether a sync has completed.
func IsInitialized(s State) bool {
	_, ok := s.(Ready)
	return ok
}

// ErrorMessage returns the failure message, or "" when not failed.
func ErrorMessage(s State) string {
	if f, ok := s.(Failed); ok {
		return f.Message
	}
	return ""
}
