package walker

import "sync"

// SkippedReason clarifies why a path was not handed to the callback.
type SkippedReason string

const (
	ReasonIgnored    SkippedReason = "ignored by scope rules"
	ReasonSizeLimit  SkippedReason = "exceeds size limit"
	ReasonNotRegular SkippedReason = "not a regular file"
	ReasonPermission SkippedReason = "permission denied"
	ReasonWalkError  SkippedReason = "walk error"
	ReasonReadError  SkippedReason = "read error"
	ReasonStatError  SkippedReason = "stat error"
	ReasonPathError  SkippedReason = "path calculation error"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// skippedTracker collects skipped items from concurrent workers.
type skippedTracker struct {
	mu   sync.Mutex
	list []SkippedItem
}

func newSkippedTracker() *skippedTracker {
	return &skippedTracker{}
}

func (st *skippedTracker) track(path string, reason SkippedReason, isDir bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.list = append(st.list, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

func (st *skippedTracker) items() []SkippedItem {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]SkippedItem(nil), st.list...)
}
