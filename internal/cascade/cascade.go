// Package cascade drives a chain of dependent selections such as
// organization → location → charger → connector. Changing one level clears
// every level below it and loads the next level's options with the new value
// as parent.
//
// Fetches can be driven synchronously (Load, Select, Reload) or split into
// Begin/Run/Apply steps so a UI can run them off its event loop. Each level
// carries a generation counter that is bumped on every invalidation; results
// whose generation no longer matches are discarded, so a slow response for an
// abandoned parent never overwrites newer state.
package cascade

import (
	"context"
	"fmt"

	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
)

// Level describes one selection in the chain.
type Level struct {
	// Name identifies the level in logs.
	Name string
	// Load fetches this level's options under the parent's selection. The
	// root level receives an empty parent.
	Load options.LoadFunc
	// New is the "create new" choice. When set it is prepended to every
	// loaded option list and selected by default; when nil the first loaded
	// option is selected automatically.
	New *options.SelectOption
	// FailTitle and FailDescription are shown when Load fails.
	FailTitle       string
	FailDescription string
}

// Empty returns the value the level takes when nothing is selected.
func (l Level) Empty() string {
	if l.New != nil {
		return l.New.Value
	}
	return ""
}

// IsBlank reports whether v selects no existing record on this level.
func (l Level) IsBlank(v string) bool {
	return v == "" || v == l.Empty()
}

type levelState struct {
	selected   string
	options    []options.SelectOption
	loading    bool
	generation uint64
}

// Fetch is a pending options load for one level.
type Fetch struct {
	Level      int
	Parent     string
	Generation uint64
}

// Result is the outcome of running a Fetch.
type Result struct {
	Fetch
	Options []options.SelectOption
	Err     error
}

// Controller owns the state of one chain. It is not safe for concurrent
// use; only Run may be called from another goroutine.
type Controller struct {
	levels   []Level
	state    []levelState
	notifier notify.Notifier
}

// New builds a controller over levels, root first. A nil notifier discards
// notifications.
func New(notifier notify.Notifier, levels ...Level) *Controller {
	if notifier == nil {
		notifier = notify.Discard
	}
	c := &Controller{
		levels:   levels,
		state:    make([]levelState, len(levels)),
		notifier: notifier,
	}
	for i := range c.state {
		c.state[i].selected = levels[i].Empty()
	}
	return c
}

// Len returns the number of levels.
func (c *Controller) Len() int { return len(c.levels) }

// Level returns the definition of level k.
func (c *Controller) Level(k int) Level { return c.levels[k] }

// Selected returns the selected value of level k.
func (c *Controller) Selected(k int) string { return c.state[k].selected }

// Options returns a copy of level k's options.
func (c *Controller) Options(k int) []options.SelectOption {
	out := make([]options.SelectOption, len(c.state[k].options))
	copy(out, c.state[k].options)
	return out
}

// Loading reports whether level k has a fetch in flight.
func (c *Controller) Loading(k int) bool { return c.state[k].loading }

// Generation returns level k's current generation.
func (c *Controller) Generation(k int) uint64 { return c.state[k].generation }

// HasSelection reports whether level k selects an existing record.
func (c *Controller) HasSelection(k int) bool {
	return !c.levels[k].IsBlank(c.state[k].selected)
}

// Disabled reports whether level j should refuse input: while it is loading
// or while any ancestor has no selection.
func (c *Controller) Disabled(j int) bool {
	if c.state[j].loading {
		return true
	}
	for i := 0; i < j; i++ {
		if !c.HasSelection(i) {
			return true
		}
	}
	return false
}

// Load fetches the root level and cascades through auto-selections.
func (c *Controller) Load(ctx context.Context) {
	c.Drive(ctx, c.BeginLoad())
}

// Select sets level k to v, clears every level below k and, when v selects a
// record, loads level k+1.
func (c *Controller) Select(ctx context.Context, k int, v string) {
	c.Drive(ctx, c.BeginSelect(k, v))
}

// Reload re-fetches level k under its current parent, resetting level k and
// its descendants first.
func (c *Controller) Reload(ctx context.Context, k int) {
	c.Drive(ctx, c.BeginReload(k))
}

// Preset selects values on the first levels without loading any options.
// Blank values select the level's empty choice. Later levels are cleared.
func (c *Controller) Preset(values ...string) {
	c.invalidateFrom(0)
	for k, v := range values {
		if k >= len(c.levels) {
			break
		}
		if v == "" {
			v = c.levels[k].Empty()
		}
		c.state[k].selected = v
	}
}

// BeginLoad starts loading the root level.
func (c *Controller) BeginLoad() *Fetch {
	return c.BeginReload(0)
}

// BeginSelect applies a selection and returns the follow-up fetch, if any.
func (c *Controller) BeginSelect(k int, v string) *Fetch {
	c.state[k].selected = v
	c.invalidateFrom(k + 1)
	if k+1 >= len(c.levels) || c.levels[k].IsBlank(v) {
		return nil
	}
	return c.begin(k+1, v)
}

// BeginReload resets level k and its descendants and returns the fetch that
// repopulates level k. It returns nil when k's parent has no selection.
func (c *Controller) BeginReload(k int) *Fetch {
	c.invalidateFrom(k)
	parent := ""
	if k > 0 {
		if !c.HasSelection(k - 1) {
			return nil
		}
		parent = c.state[k-1].selected
	}
	return c.begin(k, parent)
}

// Run performs the network part of f. It only reads the level definitions,
// so it may be called from any goroutine.
func (c *Controller) Run(ctx context.Context, f Fetch) Result {
	opts, err := c.levels[f.Level].Load(ctx, f.Parent)
	return Result{Fetch: f, Options: opts, Err: err}
}

// Apply stores r if it is still current. It returns the fetch triggered by an
// auto-selection, if any, and whether r was applied. Stale results are
// dropped.
func (c *Controller) Apply(ctx context.Context, r Result) (*Fetch, bool) {
	st := &c.state[r.Level]
	lvl := c.levels[r.Level]
	log := logging.FromContext(ctx)

	if r.Generation != st.generation {
		log.Debug().
			Ctx(ctx).
			Str("component", "cascade").
			Str("level", lvl.Name).
			Str("parent", r.Parent).
			Uint64("generation", r.Generation).
			Uint64("current_generation", st.generation).
			Msg("discarding stale options")
		return nil, false
	}
	st.loading = false

	if r.Err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "cascade").
			Str("level", lvl.Name).
			Str("parent", r.Parent).
			Err(r.Err).
			Msg("options load failed")
		st.options = []options.SelectOption{}
		st.selected = lvl.Empty()
		c.invalidateFrom(r.Level + 1)
		if lvl.FailTitle != "" {
			notify.Error(c.notifier, lvl.FailTitle, lvl.FailDescription)
		}
		return nil, true
	}

	if lvl.New != nil {
		st.options = append([]options.SelectOption{*lvl.New}, r.Options...)
		st.selected = lvl.New.Value
		return nil, true
	}

	st.options = append([]options.SelectOption{}, r.Options...)
	if len(st.options) == 0 {
		st.selected = ""
		return nil, true
	}
	return c.BeginSelect(r.Level, st.options[0].Value), true
}

func (c *Controller) begin(k int, parent string) *Fetch {
	st := &c.state[k]
	st.generation++
	st.loading = true
	return &Fetch{Level: k, Parent: parent, Generation: st.generation}
}

// invalidateFrom clears options and selections of levels k and below and
// bumps their generations so in-flight results are ignored.
func (c *Controller) invalidateFrom(k int) {
	for j := k; j < len(c.levels); j++ {
		st := &c.state[j]
		st.generation++
		st.options = nil
		st.selected = c.levels[j].Empty()
		st.loading = false
	}
}

// Drive runs f and every fetch its auto-selections trigger, synchronously.
// A nil f is a no-op.
func (c *Controller) Drive(ctx context.Context, f *Fetch) {
	for f != nil {
		f, _ = c.Apply(ctx, c.Run(ctx, *f))
	}
}

// String summarizes the selections, for debugging.
func (c *Controller) String() string {
	s := ""
	for i, l := range c.levels {
		if i > 0 {
			s += " > "
		}
		s += fmt.Sprintf("%s=%q", l.Name, c.state[i].selected)
	}
	return s
}
