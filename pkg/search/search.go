// Package search filters a gallery snapshot by a debounced free-text query.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"artgallery/pkg/client"
)

// DefaultDelay is the debounce window after the last keystroke.
const DefaultDelay = 500 * time.Millisecond

// PopularTags are offered as one-click queries.
var PopularTags = []string{"landscape", "portrait", "sci-fi", "fantasy", "abstract"}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Lister loads the full gallery.
type Lister interface {
	ListPosts(ctx context.Context) ([]client.Post, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithScheduler replaces time.AfterFunc.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.schedule = s }
}

// WithObserver registers fn to be called after every recompute with the
// query used and the resulting filtered list (nil when no filter is active).
func WithObserver(fn func(query string, filtered []client.Post)) Option {
	return func(c *Controller) { c.observe = fn }
}

// Controller holds the query, the snapshot and the derived filtered list.
// At most one recompute is pending at any time.
type Controller struct {
	mu       sync.Mutex
	delay    time.Duration
	schedule Scheduler
	observe  func(string, []client.Post)

	query    string
	snapshot []client.Post
	filtered []client.Post
	active   bool

	pending Timer
	seq     uint64
}

func NewController(opts ...Option) *Controller {
	c := &Controller{delay: DefaultDelay, schedule: afterFunc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnQueryChange records q immediately and replaces any pending recompute.
func (c *Controller) OnQueryChange(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = q
	c.stopPendingLocked()
	c.seq++
	seq := c.seq
	c.pending = c.schedule(c.delay, func() { c.fire(seq) })
}

// SelectTag behaves like typing tag into the search box.
func (c *Controller) SelectTag(tag string) {
	c.OnQueryChange(tag)
}

// OnClear empties the query and drops the filtered list.
func (c *Controller) OnClear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopPendingLocked()
	c.seq++
	c.query = ""
	c.filtered = nil
	c.active = false
}

// SetSnapshot replaces the base list. An active filter is re-applied.
func (c *Controller) SetSnapshot(posts []client.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = append([]client.Post(nil), posts...)
	if c.active {
		c.filtered = Filter(c.snapshot, c.query)
	}
}

// Load fetches the gallery through l and installs it as the snapshot.
func (c *Controller) Load(ctx context.Context, l Lister) error {
	posts, err := l.ListPosts(ctx)
	if err != nil {
		return err
	}
	c.SetSnapshot(posts)
	return nil
}

func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Filtered returns the filtered list and whether a filter is active.
// An active filter with no matches yields an empty, non-nil slice.
func (c *Controller) Filtered() ([]client.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return nil, false
	}
	return append([]client.Post{}, c.filtered...), true
}

// Visible is what a gallery view should render.
func (c *Controller) Visible() []client.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return append([]client.Post{}, c.filtered...)
	}
	return append([]client.Post{}, c.snapshot...)
}

// Pending reports whether a recompute is scheduled.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	query := c.query
	if strings.TrimSpace(query) == "" {
		c.filtered = nil
		c.active = false
	} else {
		c.filtered = Filter(c.snapshot, query)
		c.active = true
	}
	observe := c.observe
	var result []client.Post
	if c.active {
		result = append([]client.Post{}, c.filtered...)
	}
	c.mu.Unlock()

	if observe != nil {
		observe(query, result)
	}
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// Filter returns the posts whose author or prompt contains query, ignoring
// case, in snapshot order. A query that trims to empty matches everything.
func Filter(posts []client.Post, query string) []client.Post {
	needle := strings.TrimSpace(query)
	out := make([]client.Post, 0, len(posts))
	if needle == "" {
		return append(out, posts...)
	}
	fold := cases.Fold()
	needle = fold.String(needle)
	for _, p := range posts {
		if strings.Contains(fold.String(p.Name), needle) || strings.Contains(fold.String(p.Prompt), needle) {
			out = append(out, p)
		}
	}
	return out
}
