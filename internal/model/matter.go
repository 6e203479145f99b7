package model

import (
	"context"
	"fmt"
	"time"

	"github.com/idilsaglam/matters/internal/events"
)

// DefaultTitle is what a matter is called when nobody named it.
const DefaultTitle = "empty matter..."

// Reply is one annotation appended to a matter.
type Reply struct {
	Content string `json:"content"`
}

// Record is the persisted shape of a matter, one per entity.
type Record struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Order int     `json:"order"`
	Date  string  `json:"date"`
	Reply []Reply `json:"reply"`
	Done  bool    `json:"done"`
}

func (r Record) clone() Record {
	out := r
	out.Reply = make([]Reply, len(r.Reply))
	copy(out.Reply, r.Reply)
	return out
}

// Matter is one list entry. It is only ever created by a List, and all
// mutation goes through Save, ToggleDone and Destroy.
type Matter struct {
	rec       Record
	list      *List
	hub       events.Hub
	destroyed bool
}

func (m *Matter) ID() string       { return m.rec.ID }
func (m *Matter) Title() string    { return m.rec.Title }
func (m *Matter) Order() int       { return m.rec.Order }
func (m *Matter) Date() string     { return m.rec.Date }
func (m *Matter) Done() bool       { return m.rec.Done }
func (m *Matter) Destroyed() bool  { return m.destroyed }
func (m *Matter) ReplyCount() int  { return len(m.rec.Reply) }
func (m *Matter) String() string   { return fmt.Sprintf("%d:%s", m.rec.Order, m.rec.Title) }
func (m *Matter) Replies() []Reply { return m.Attributes().Reply }

// Attributes returns a snapshot of the current fields. The caller owns it.
func (m *Matter) Attributes() Record { return m.rec.clone() }

// Save merges the set fields of a into the matter, persists it and notifies
// change listeners. Persistence is best-effort, see List.Flush.
func (m *Matter) Save(ctx context.Context, a Attrs) {
	m.list.save(ctx, m, a)
}

// ToggleDone flips the done flag and saves.
func (m *Matter) ToggleDone(ctx context.Context) {
	m.Save(ctx, Attrs{}.WithDone(!m.rec.Done))
}

// Destroy removes the matter from its list and from the store.
func (m *Matter) Destroy(ctx context.Context) {
	m.list.destroy(ctx, m)
}

// OnChange calls fn after every save of this matter.
func (m *Matter) OnChange(fn func(*Matter)) (off func()) {
	return m.hub.On(events.Changed, func(events.Event) { fn(m) })
}

// OnDestroy calls fn once the matter has been destroyed.
func (m *Matter) OnDestroy(fn func(*Matter)) (off func()) {
	return m.hub.On(events.Removed, func(events.Event) { fn(m) })
}

// Today formats t the way matter dates are stored: year-month-day, no padding.
func Today(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}
