package kv

import (
	"context"
	"fmt"
)

// siblingList is the single shared container behind a sibling conflict.
// Every object materialized from the same conflicting read holds the same
// *siblingList, so replacing a slot or reordering is visible to all of
// them. A slot is either a materialized object or an unresolved version
// tag awaiting a scoped read.
type siblingList struct {
	slots []siblingSlot
}

type siblingSlot struct {
	obj  *Object
	vtag string
}

// HasSiblings reports whether the object is in a sibling conflict.
func (o *Object) HasSiblings() bool {
	return o.SiblingCount() > 0
}

// SiblingCount returns the number of conflicting versions, materialized or
// not.
func (o *Object) SiblingCount() int {
	if o.siblings == nil {
		return 0
	}
	return len(o.siblings.slots)
}

// SiblingVTag returns the version tag of an unresolved sibling slot, or
// "" when the slot is already materialized or out of range.
func (o *Object) SiblingVTag(i int) string {
	if o.siblings == nil || i < 0 || i >= len(o.siblings.slots) {
		return ""
	}
	return o.siblings.slots[i].vtag
}

// SetSiblings establishes the shared sibling list over the given objects.
// The receiver is repositioned to index 0 when present, and every object in
// the list is handed the same shared container, so later mutation through
// any of them is visible to all. A receiver absent from the list still
// adopts the container, so it observes the conflict without being part of
// it. A list with at most one resolvable entry means there is no conflict,
// and the receiver's sibling list is cleared.
func (o *Object) SetSiblings(siblings []*Object) {
	ordered := make([]*Object, 0, len(siblings))
	found := false
	for _, sibling := range siblings {
		if sibling == o {
			found = true
		}
	}
	if found {
		ordered = append(ordered, o)
	}
	for _, sibling := range siblings {
		if sibling != o {
			ordered = append(ordered, sibling)
		}
	}

	if len(ordered) <= 1 {
		o.siblings = nil
		return
	}

	shared := &siblingList{slots: make([]siblingSlot, len(ordered))}
	for i, sibling := range ordered {
		shared.slots[i] = siblingSlot{obj: sibling}
	}
	for _, sibling := range ordered {
		sibling.siblings = shared
	}
	if !found {
		o.siblings = shared
	}
}

// Sibling returns the i-th conflicting version. A slot holding an
// unresolved version tag is fetched with a read scoped to that tag and the
// materialized object replaces the tag in the shared list.
func (o *Object) Sibling(ctx context.Context, i int, opts GetOptions) (*Object, error) {
	if o.siblings == nil || i < 0 || i >= len(o.siblings.slots) {
		return nil, fmt.Errorf("%w: sibling index %d out of range", ErrInvalidArgument, i)
	}

	slot := &o.siblings.slots[i]
	if slot.obj != nil {
		return slot.obj, nil
	}

	opts.VTag = slot.vtag
	sibling := newObject(o.bucket, o.key, o.structured)
	if err := sibling.Reload(ctx, opts); err != nil {
		return nil, err
	}

	slot.obj = sibling
	slot.vtag = ""
	sibling.siblings = o.siblings
	return sibling, nil
}

// Siblings resolves every unresolved sibling slot in index order and
// returns the full list. Resolution is sequential; this path serves
// conflict-resolution tooling, not the hot path.
func (o *Object) Siblings(ctx context.Context, opts GetOptions) ([]*Object, error) {
	count := o.SiblingCount()
	resolved := make([]*Object, 0, count)
	for i := 0; i < count; i++ {
		sibling, err := o.Sibling(ctx, i, opts)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, sibling)
	}
	return resolved, nil
}
