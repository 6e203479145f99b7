package model

import "slices"

// Attrs is a partial set of matter fields. Nil fields are "not set".
// It serves both as a save patch and as an exact-match predicate for Where.
type Attrs struct {
	Title *string
	Order *int
	Date  *string
	Reply *[]Reply
	Done  *bool
}

func (a Attrs) WithTitle(v string) Attrs { a.Title = &v; return a }
func (a Attrs) WithOrder(v int) Attrs    { a.Order = &v; return a }
func (a Attrs) WithDate(v string) Attrs  { a.Date = &v; return a }
func (a Attrs) WithDone(v bool) Attrs    { a.Done = &v; return a }

func (a Attrs) WithReply(v []Reply) Attrs {
	cp := make([]Reply, len(v))
	copy(cp, v)
	a.Reply = &cp
	return a
}

// IsZero reports whether no field is set.
func (a Attrs) IsZero() bool {
	return a.Title == nil && a.Order == nil && a.Date == nil && a.Reply == nil && a.Done == nil
}

// apply is a shallow merge: only the set fields are overwritten.
func (a Attrs) apply(r *Record) {
	if a.Title != nil {
		r.Title = *a.Title
	}
	if a.Order != nil {
		r.Order = *a.Order
	}
	if a.Date != nil {
		r.Date = *a.Date
	}
	if a.Reply != nil {
		r.Reply = make([]Reply, len(*a.Reply))
		copy(r.Reply, *a.Reply)
	}
	if a.Done != nil {
		r.Done = *a.Done
	}
}

func (a Attrs) matches(r Record) bool {
	if a.Title != nil && r.Title != *a.Title {
		return false
	}
	if a.Order != nil && r.Order != *a.Order {
		return false
	}
	if a.Date != nil && r.Date != *a.Date {
		return false
	}
	if a.Reply != nil && !slices.Equal(r.Reply, *a.Reply) {
		return false
	}
	if a.Done != nil && r.Done != *a.Done {
		return false
	}
	return true
}
