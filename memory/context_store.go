package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Turn is a single exchange between the user and the assistant.
// Immutable once appended.
type Turn struct {
	Message   string
	Response  string
	Timestamp time.Time
}

// ContextStore keeps a rolling window of the most recent turns per
// user, in process. Windows are created lazily on first interaction and
// live for the process lifetime unless explicitly cleared.
type ContextStore struct {
	mu       sync.RWMutex
	windows  map[string][]Turn
	maxTurns int
}

func NewContextStore(maxTurns int) *ContextStore {
	return &ContextStore{
		windows:  make(map[string][]Turn),
		maxTurns: maxTurns,
	}
}

// Get returns a copy of the user's window, oldest turn first.
func (cs *ContextStore) Get(userID string) []Turn {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	window := cs.windows[userID]
	out := make([]Turn, len(window))
	copy(out, window)
	return out
}

// Append adds a turn to the user's window, evicting the oldest turn
// when the window is full.
func (cs *ContextStore) Append(userID string, turn Turn) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	window := append(cs.windows[userID], turn)
	if len(window) > cs.maxTurns {
		window = window[len(window)-cs.maxTurns:]
	}
	cs.windows[userID] = window
}

func (cs *ContextStore) Clear(userID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.windows, userID)
}

// Summarize produces a deterministic textual digest of the window for
// profile updates. Long responses are truncated so the digest stays
// prompt-sized.
func (cs *ContextStore) Summarize(userID string) string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	window := cs.windows[userID]
	if len(window) == 0 {
		return ""
	}

	var out strings.Builder
	for _, turn := range window {
		fmt.Fprintf(&out, "User: %s\nAssistant: %s\n", turn.Message, truncate(turn.Response, 200))
	}
	return strings.TrimSpace(out.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
