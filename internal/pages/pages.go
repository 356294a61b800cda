// Package pages holds the state of each console page: its selection chain,
// the record being edited and the save flow. Pages are driven either
// synchronously (Open, Select, Save) or step by step from a UI event loop:
// every network operation is a Task that runs off the loop and hands back an
// Apply to run on it.
package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/forms"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/save"
)

// Positions of the shared organization → location → charger → connector
// chain.
const (
	LevelOrganization = iota
	LevelLocation
	LevelCharger
	LevelConnector
)

// NoDetail is returned by DetailLevel for pages without a detail record.
const NoDetail = -1

// ErrSaveFailed wraps the backend message of a rejected save.
var ErrSaveFailed = errors.New("save failed")

// Apply finishes a Task on the UI loop. It may return a cascade fetch to
// run next.
type Apply func() *cascade.Fetch

// Task is the network half of an operation. It must not touch page state;
// the Apply it returns does.
type Task func(ctx context.Context) Apply

// Page is one console page.
type Page interface {
	// Name is the page key, e.g. "chargers".
	Name() string
	Cascade() *cascade.Controller
	Form() *save.Form
	// DetailLevel is the chain level whose selection picks the edited
	// record, or NoDetail.
	DetailLevel() int
	// Open loads page data outside the chain. It may return nil.
	Open() Task
	// Detail loads the record of the current selection into the draft.
	Detail() Task
	// Missing reports whether the last detail load selected an existing
	// record that no endpoint returned. The draft is then empty.
	Missing() bool
	// Fields exposes the draft for editing.
	Fields() []Field
	// Submit validates the draft and returns the task that saves it. A
	// validation failure is notified and returned; no task is produced.
	Submit() (Task, error)
}

// Env is what every page needs.
type Env struct {
	Client    *backend.Client
	Notifier  notify.Notifier
	Localizer *intl.Localizer
	// Headless pages have no display: a successful save does not refresh
	// option lists, panels or the draft.
	Headless bool
}

func (e Env) withDefaults() Env {
	if e.Notifier == nil {
		e.Notifier = notify.Discard
	}
	if e.Localizer == nil {
		e.Localizer = intl.New(intl.LocaleArabic)
	}
	return e
}

// chain builds the first depth levels of the shared chain. leaf, when set,
// is the "new" choice of the last level.
func (e Env) chain(depth int, leaf *options.SelectOption) *cascade.Controller {
	f := options.NewFetcher(e.Client)
	all := []struct {
		name string
		load options.LoadFunc
		fail string
	}{
		{"organization", f.OrganizationsLoader(), intl.OrganizationsLoadFailed},
		{"location", f.LocationsLoader(), intl.LocationsLoadFailed},
		{"charger", f.ChargersLoader(), intl.ChargersLoadFailed},
		{"connector", f.ConnectorsLoader(), intl.ConnectorsLoadFailed},
	}
	levels := make([]cascade.Level, depth)
	for i := range levels {
		title, desc := e.Localizer.Pair(all[i].fail)
		levels[i] = cascade.Level{
			Name:            all[i].name,
			Load:            all[i].load,
			FailTitle:       title,
			FailDescription: desc,
		}
	}
	levels[depth-1].New = leaf
	return cascade.New(e.Notifier, levels...)
}

// base carries what all pages share.
type base struct {
	env     Env
	name    string
	chain   *cascade.Controller
	form    save.Form
	missing bool
}

func (b *base) Name() string { return b.name }

func (b *base) Cascade() *cascade.Controller { return b.chain }

func (b *base) Form() *save.Form { return &b.form }

func (b *base) Missing() bool { return b.missing }

func (b *base) headless() bool { return b.env.Headless }

func (b *base) notify(kind notify.Kind, id string) {
	b.env.Localizer.Notify(b.env.Notifier, kind, id)
}

// existing returns the selection of level k, or "" when it selects no
// record.
func (b *base) existing(k int) string {
	if !b.chain.HasSelection(k) {
		return ""
	}
	return b.chain.Selected(k)
}

// submit moves the form through validation and returns the save task.
// after runs off the loop once the save succeeded and returns the page's
// follow-up on the loop.
func (b *base) submit(
	input any,
	send func(ctx context.Context) save.Result,
	after func(ctx context.Context) Apply,
) (Task, error) {
	if b.env.Headless {
		after = nil
	}
	err := b.form.Begin(func() error { return forms.Validate(input) })
	if err != nil {
		if !errors.Is(err, save.ErrBusy) {
			id := forms.MessageID(err)
			if id == "" {
				id = intl.SaveUnexpected
			}
			b.notify(notify.KindError, id)
		}
		return nil, err
	}
	return func(ctx context.Context) Apply {
		res := send(ctx)
		var next Apply
		if res.Success && after != nil {
			next = after(ctx)
		}
		return func() *cascade.Fetch {
			b.form.Finish(res)
			b.form.Reset()
			if res.Success {
				b.env.Localizer.NotifyWith(b.env.Notifier, notify.KindSuccess, intl.SaveSucceeded, res.Message)
			} else {
				b.env.Localizer.NotifyWith(b.env.Notifier, notify.KindError, intl.SaveFailed, res.Message)
			}
			if next != nil {
				return next()
			}
			return nil
		}
	}, nil
}

// local wraps on-loop work that needs no network.
func local(fn func()) Task {
	return func(context.Context) Apply {
		return func() *cascade.Fetch {
			fn()
			return nil
		}
	}
}

// Run executes t on the calling goroutine and drives any fetch it starts.
func Run(ctx context.Context, p Page, t Task) {
	if t == nil {
		return
	}
	p.Cascade().Drive(ctx, t(ctx)())
}

// Open loads the chain, the page data and the initial detail.
func Open(ctx context.Context, p Page) {
	p.Cascade().Load(ctx)
	Run(ctx, p, p.Open())
	if p.DetailLevel() != NoDetail {
		Run(ctx, p, p.Detail())
	}
}

// Preset selects a known path without loading option lists, then loads the
// detail when the path reaches the detail level.
func Preset(ctx context.Context, p Page, path ...string) {
	p.Cascade().Preset(path...)
	if d := p.DetailLevel(); d != NoDetail && d < len(path) {
		Run(ctx, p, p.Detail())
	}
}

// Select changes level k and reloads the detail when the edited record may
// have changed.
func Select(ctx context.Context, p Page, k int, v string) {
	p.Cascade().Select(ctx, k, v)
	if d := p.DetailLevel(); d != NoDetail && k <= d {
		Run(ctx, p, p.Detail())
	}
}

// Save validates and saves the draft. A rejected save returns an error
// wrapping ErrSaveFailed with the backend message. Headless pages are not
// reloaded afterwards.
func Save(ctx context.Context, p Page) error {
	t, err := p.Submit()
	if err != nil {
		return err
	}
	Run(ctx, p, t)
	if last := p.Form().Last(); !last.Success {
		return fmt.Errorf("%w: %s", ErrSaveFailed, last.Message)
	}
	if h, ok := p.(interface{ headless() bool }); ok && h.headless() {
		return nil
	}
	if p.DetailLevel() != NoDetail {
		Run(ctx, p, p.Detail())
	}
	return nil
}
