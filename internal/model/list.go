package model

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/idilsaglam/matters/internal/events"
)

// List is the ordered collection of matters for one namespace. Membership is
// kept sorted by Order ascending after every mutation.
//
// The in-memory list is the source of truth; the Store is a replica. A failed
// write is logged and queued, and Flush retries whatever is still queued.
type List struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time

	matters   []*Matter
	hub       events.Hub
	highWater int

	pending       map[*Matter]struct{}
	pendingRemove map[string]struct{}
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(list *List) {
		if l != nil {
			list.logger = l
		}
	}
}

// WithClock overrides time.Now for creation dates.
func WithClock(now func() time.Time) Option {
	return func(list *List) {
		if now != nil {
			list.now = now
		}
	}
}

func NewList(store Store, opts ...Option) *List {
	l := &List{
		store:         store,
		logger:        slog.Default(),
		now:           time.Now,
		pending:       map[*Matter]struct{}{},
		pendingRemove: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// On subscribes to collection events. Added and Removed carry the *Matter as
// Subject, Changed carries the saved *Matter, Reset carries nil.
func (l *List) On(kind events.Kind, fn events.Handler) (off func()) {
	return l.hub.On(kind, fn)
}

func (l *List) Len() int             { return len(l.matters) }
func (l *List) At(i int) *Matter     { return l.matters[i] }
func (l *List) Logger() *slog.Logger { return l.logger }

// Matters returns the current membership in order. The slice is a copy.
func (l *List) Matters() []*Matter {
	return slices.Clone(l.matters)
}

// Each calls fn for every member in order.
func (l *List) Each(fn func(*Matter)) {
	for _, m := range l.Matters() {
		fn(m)
	}
}

// Get finds a member by store id.
func (l *List) Get(id string) (*Matter, error) {
	for _, m := range l.matters {
		if m.rec.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("matter %q: %w", id, ErrNotFound)
}

// NextOrder is 1 for a fresh list, otherwise one past the highest order seen
// in this session. The tail of the sorted membership is normally that highest
// order; the session mark only matters once Reset narrowed the membership.
func (l *List) NextOrder() int {
	top := l.highWater
	if n := len(l.matters); n > 0 && l.matters[n-1].rec.Order > top {
		top = l.matters[n-1].rec.Order
	}
	return top + 1
}

// Fetch replaces the membership with everything in the store and emits Reset.
// On error the membership is left as it was.
//
// Queued writes win over what the store returned: a matter waiting for Flush
// is kept as is (unsaved inserts included) and a queued removal stays removed.
func (l *List) Fetch(ctx context.Context) error {
	recs, err := l.store.FetchAll(ctx)
	if err != nil {
		l.logger.Warn("fetch failed", slog.String("error", err.Error()))
		return fmt.Errorf("fetch: %w", err)
	}
	queued := make(map[string]*Matter, len(l.pending))
	ms := make([]*Matter, 0, len(recs)+len(l.pending))
	for m := range l.pending {
		if m.rec.ID == "" {
			ms = append(ms, m)
			l.bumpHighWater(m.rec.Order)
			continue
		}
		queued[m.rec.ID] = m
	}
	for _, r := range recs {
		if _, gone := l.pendingRemove[r.ID]; gone {
			continue
		}
		if m, ok := queued[r.ID]; ok {
			delete(queued, r.ID)
			ms = append(ms, m)
			l.bumpHighWater(m.rec.Order)
			continue
		}
		if r.Reply == nil {
			r.Reply = []Reply{}
		}
		ms = append(ms, &Matter{rec: r, list: l})
		l.bumpHighWater(r.Order)
	}
	// Queued updates the store no longer knows about go back as inserts.
	for _, m := range queued {
		m.rec.ID = ""
		ms = append(ms, m)
		l.bumpHighWater(m.rec.Order)
	}
	l.matters = ms
	l.sort()
	l.logger.Debug("fetched", slog.Int("count", len(ms)))
	l.hub.Emit(events.Event{Kind: events.Reset})
	return nil
}

// Create builds a matter from the defaults overlaid with a, persists it,
// inserts it in order and emits Added.
func (l *List) Create(ctx context.Context, a Attrs) *Matter {
	rec := Record{
		Title: DefaultTitle,
		Order: l.NextOrder(),
		Date:  Today(l.now()),
		Reply: []Reply{},
	}
	a.apply(&rec)
	m := &Matter{rec: rec, list: l}
	l.bumpHighWater(rec.Order)
	l.persist(ctx, m)
	l.matters = append(l.matters, m)
	l.sort()
	l.hub.Emit(events.Event{Kind: events.Added, Subject: m})
	return m
}

// Where returns the members whose fields equal every field set in a.
func (l *List) Where(a Attrs) []*Matter {
	var out []*Matter
	for _, m := range l.matters {
		if a.matches(m.rec) {
			out = append(out, m)
		}
	}
	return out
}

// Reset replaces the membership with subset (sorted) and emits Reset.
// Matters dropped from membership stay in the store.
func (l *List) Reset(subset []*Matter) {
	l.matters = slices.Clone(subset)
	for _, m := range l.matters {
		l.bumpHighWater(m.rec.Order)
	}
	l.sort()
	l.hub.Emit(events.Event{Kind: events.Reset})
}

// Pending reports how many writes are waiting for Flush.
func (l *List) Pending() int {
	return len(l.pending) + len(l.pendingRemove)
}

// Flush retries every queued write. It returns the joined errors of the
// writes that failed again; those stay queued.
func (l *List) Flush(ctx context.Context) error {
	var errs []error

	ids := make([]string, 0, len(l.pendingRemove))
	for id := range l.pendingRemove {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := l.store.Remove(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("remove %s: %w", id, err))
			continue
		}
		delete(l.pendingRemove, id)
	}

	ms := make([]*Matter, 0, len(l.pending))
	for m := range l.pending {
		ms = append(ms, m)
	}
	slices.SortFunc(ms, byOrder)
	for _, m := range ms {
		if err := l.write(ctx, m); err != nil {
			errs = append(errs, fmt.Errorf("save %q: %w", m.rec.Title, err))
			continue
		}
		delete(l.pending, m)
	}
	return errors.Join(errs...)
}

func (l *List) save(ctx context.Context, m *Matter, a Attrs) {
	if m.destroyed {
		l.logger.Debug("save on destroyed matter ignored", slog.String("id", m.rec.ID))
		return
	}
	prevOrder := m.rec.Order
	a.apply(&m.rec)
	if m.rec.Order != prevOrder {
		l.bumpHighWater(m.rec.Order)
		l.sort()
	}
	l.persist(ctx, m)
	m.hub.Emit(events.Event{Kind: events.Changed, Subject: m})
	l.hub.Emit(events.Event{Kind: events.Changed, Subject: m})
}

func (l *List) destroy(ctx context.Context, m *Matter) {
	if m.destroyed {
		return
	}
	m.destroyed = true
	delete(l.pending, m)
	if i := slices.Index(l.matters, m); i >= 0 {
		l.matters = slices.Delete(l.matters, i, i+1)
	}
	if id := m.rec.ID; id != "" {
		if err := l.store.Remove(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			l.logger.Warn("persist failed",
				slog.String("op", "remove"),
				slog.String("id", id),
				slog.String("error", err.Error()))
			l.pendingRemove[id] = struct{}{}
		}
	}
	m.hub.Emit(events.Event{Kind: events.Removed, Subject: m})
	l.hub.Emit(events.Event{Kind: events.Removed, Subject: m})
}

// persist replicates m and queues it on failure.
func (l *List) persist(ctx context.Context, m *Matter) {
	if err := l.write(ctx, m); err != nil {
		op := "update"
		if m.rec.ID == "" {
			op = "insert"
		}
		l.logger.Warn("persist failed",
			slog.String("op", op),
			slog.String("id", m.rec.ID),
			slog.String("error", err.Error()))
		l.pending[m] = struct{}{}
		return
	}
	delete(l.pending, m)
}

// write inserts a matter that has no id yet and updates one that has.
func (l *List) write(ctx context.Context, m *Matter) error {
	if m.rec.ID == "" {
		id, err := l.store.Insert(ctx, m.rec.clone())
		if err != nil {
			return err
		}
		m.rec.ID = id
		return nil
	}
	return l.store.Update(ctx, m.rec.ID, m.rec.clone())
}

func (l *List) bumpHighWater(order int) {
	if order > l.highWater {
		l.highWater = order
	}
}

func (l *List) sort() {
	slices.SortStableFunc(l.matters, byOrder)
}

func byOrder(a, b *Matter) int {
	return cmp.Compare(a.rec.Order, b.rec.Order)
}
