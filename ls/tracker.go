// Package ls turns analysis snapshots into protocol-shaped results:
// diagnostics, quick fixes, outlines, highlights, formatting edits and the
// structured module descriptions served on the custom methods.
package ls

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/verilsp/verilsp/analysis"
	"github.com/verilsp/verilsp/lsp"
)

// BufferTracker keeps the analysis state of one open buffer: the snapshot
// of the latest contents and the most recent snapshot that parsed
// cleanly. Diagnostics and highlights come from the current snapshot so
// syntax errors show up immediately; structural queries (outline, module
// info) fall back to the last good snapshot so they keep answering while
// the user types through a broken state.
type BufferTracker struct {
	current  *analysis.Snapshot
	lastGood *analysis.Snapshot
}

// Update installs a new snapshot as current, promoting it to last good
// when it parsed cleanly.
func (t *BufferTracker) Update(snap *analysis.Snapshot) {
	t.current = snap
	if snap != nil && snap.ParsedSuccessfully() {
		t.lastGood = snap
	}
}

// Current returns the snapshot of the latest buffer contents, or nil if
// nothing has been analyzed yet.
func (t *BufferTracker) Current() *analysis.Snapshot {
	if t == nil {
		return nil
	}
	return t.current
}

// LastGood returns the most recent cleanly parsed snapshot, or nil.
func (t *BufferTracker) LastGood() *analysis.Snapshot {
	if t == nil {
		return nil
	}
	return t.lastGood
}

// TrackerContainer owns the trackers of all open buffers plus the
// runtime lint state shared between them.
type TrackerContainer struct {
	mu       sync.RWMutex
	trackers map[lsp.DocumentURI]*BufferTracker
	// topModules is the design-root set supplied by the client. It is
	// explicit state here rather than process-global so several
	// containers can coexist (tests, embedding).
	topModules []string
}

func NewTrackerContainer() *TrackerContainer {
	return &TrackerContainer{trackers: make(map[lsp.DocumentURI]*BufferTracker)}
}

// SetTopModules replaces the design-root set used by top-module-only lint
// rules. It affects buffers analyzed after the call.
func (c *TrackerContainer) SetTopModules(modules []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topModules = append([]string(nil), modules...)
}

// ClearTopModules drops the design-root set.
func (c *TrackerContainer) ClearTopModules() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topModules = nil
}

// Update analyzes contents and installs the result for uri, creating the
// tracker on first sight. The produced snapshot is returned.
func (c *TrackerContainer) Update(uri lsp.DocumentURI, contents string, version int32) *analysis.Snapshot {
	cfg := analysis.FindConfig(configDirFor(uri))
	c.mu.RLock()
	cfg.TopModules = append(cfg.TopModules, c.topModules...)
	c.mu.RUnlock()
	snap := analysis.Analyze(contents, version, analysis.NewLinter(cfg))

	c.mu.Lock()
	defer c.mu.Unlock()
	tracker := c.trackers[uri]
	if tracker == nil {
		tracker = &BufferTracker{}
		c.trackers[uri] = tracker
	}
	tracker.Update(snap)
	return snap
}

// Remove drops the tracker of a closed buffer.
func (c *TrackerContainer) Remove(uri lsp.DocumentURI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.trackers, uri)
}

// Get returns the tracker for uri, or nil when the buffer is not open.
func (c *TrackerContainer) Get(uri lsp.DocumentURI) *BufferTracker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trackers[uri]
}

// AllURIs returns the open buffer URIs in a stable order.
func (c *TrackerContainer) AllURIs() []lsp.DocumentURI {
	c.mu.RLock()
	defer c.mu.RUnlock()
	uris := make([]lsp.DocumentURI, 0, len(c.trackers))
	for uri := range c.trackers {
		uris = append(uris, uri)
	}
	sort.Slice(uris, func(i, j int) bool { return uris[i] < uris[j] })
	return uris
}

// configDirFor resolves the directory the lint config search starts in.
// Non-file URIs (untitled buffers) fall back to the working directory.
func configDirFor(uri lsp.DocumentURI) string {
	if strings.HasPrefix(string(uri), "file://") {
		return filepath.Dir(uri.Path())
	}
	return "."
}
