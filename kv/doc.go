// Package kv models a single logical record in an eventually-consistent,
// replicated key-value store: its metadata, secondary indexes, links, and
// the multi-version conflict state that arises from concurrent writes under
// a vector-clock causality model.
//
// The package owns the object's state machine and the read/modify/write
// protocol that reconciles local state with the store's response. The
// network round-trips themselves are delegated to a Transport collaborator;
// quorum parameters resolve from explicit values through bucket defaults to
// client defaults before any transport call.
//
// When the store cannot causally order concurrent writes it returns
// siblings. A conflicting read materializes every version into objects that
// share one mutable sibling list, so conflict-resolution code can walk and
// replace versions through any of them.
package kv
