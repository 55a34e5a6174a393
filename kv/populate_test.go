package kv

import (
	"context"
	"errors"
	"testing"
)

func TestPopulateNotFoundClearsObject(t *testing.T) {
	obj := newTestObject(t, "k1")
	obj.SetValue(map[string]any{"name": "stale"})
	obj.exists = true

	if err := obj.populate(NotFoundResult(), true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}
	if obj.Exists() {
		t.Fatalf("object should not exist after not-found")
	}
	if obj.Value() != nil {
		t.Fatalf("payload should be cleared, got %v", obj.Value())
	}
	if obj.HasSiblings() {
		t.Fatalf("sibling list should be empty")
	}
}

func TestPopulateNilResultMeansNotFound(t *testing.T) {
	obj := newTestObject(t, "k1")
	obj.exists = true

	if err := obj.populate(nil, true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}
	if obj.Exists() {
		t.Fatalf("object should not exist")
	}
}

func TestPopulateSingleVersionRoundTrip(t *testing.T) {
	meta := jsonMeta(ContentTypeJSON)
	meta.SetUserMeta(map[string]string{"team": "storage"})
	meta.AddIndex(mustIndexEntry(t, "owner_bin", "alice"))
	result := VersionsResult([]byte("clock-1"), VersionContent{
		Metadata: meta,
		Data:     []byte(`{"name":"alice","age":30}`),
	})

	obj := newTestObject(t, "k1")
	if err := obj.populate(result, true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}

	if !obj.Exists() {
		t.Fatalf("object should exist")
	}
	if string(obj.VClock()) != "clock-1" {
		t.Fatalf("unexpected vclock: %q", obj.VClock())
	}
	value, ok := obj.Value().(map[string]any)
	if !ok || value["name"] != "alice" || value["age"] != float64(30) {
		t.Fatalf("unexpected decoded value: %#v", obj.Value())
	}
	if obj.UserMeta()["team"] != "storage" {
		t.Fatalf("unexpected user meta: %v", obj.UserMeta())
	}
	if obj.HasSiblings() {
		t.Fatalf("single version must not be conflicted")
	}
}

func TestPopulateTombstoneKeepsClockWithoutExistence(t *testing.T) {
	obj := newTestObject(t, "k1")

	if err := obj.populate(VersionsResult([]byte("clock-2")), true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}
	if obj.Exists() {
		t.Fatalf("tombstone must not exist")
	}
	if string(obj.VClock()) != "clock-2" {
		t.Fatalf("tombstone must keep the vector clock, got %q", obj.VClock())
	}
}

func TestPopulateConflictMaterializesSharedSiblings(t *testing.T) {
	result := VersionsResult([]byte("clock-3"),
		VersionContent{Metadata: jsonMeta(ContentTypeJSON), Data: []byte(`{"v":1}`)},
		VersionContent{Metadata: jsonMeta(ContentTypeJSON), Data: []byte(`{"v":2}`)},
	)

	obj := newTestObject(t, "k1")
	if err := obj.populate(result, true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}

	if !obj.HasSiblings() {
		t.Fatalf("expected a sibling conflict")
	}
	if obj.SiblingCount() != 2 {
		t.Fatalf("expected 2 siblings, got %d", obj.SiblingCount())
	}

	first, err := obj.Sibling(context.Background(), 0, GetOptions{})
	if err != nil {
		t.Fatalf("unexpected sibling error: %v", err)
	}
	if first != obj {
		t.Fatalf("sibling 0 must be the object itself")
	}

	second, err := obj.Sibling(context.Background(), 1, GetOptions{})
	if err != nil {
		t.Fatalf("unexpected sibling error: %v", err)
	}
	if second == obj {
		t.Fatalf("sibling 1 must be a peer object")
	}
	if second.Bucket() != obj.Bucket() || second.Key() != obj.Key() {
		t.Fatalf("peer must share identity")
	}
	if second.Metadata() == obj.Metadata() {
		t.Fatalf("peers must not share a Metadata instance")
	}
	if obj.siblings != second.siblings {
		t.Fatalf("peers must share one sibling list instance")
	}

	// Re-establishing siblings through the peer is visible on the object.
	second.SetSiblings([]*Object{obj, second})
	if obj.siblings != second.siblings {
		t.Fatalf("shared list lost after SetSiblings")
	}
	reordered, err := obj.Sibling(context.Background(), 0, GetOptions{})
	if err != nil {
		t.Fatalf("unexpected sibling error: %v", err)
	}
	if reordered != second {
		t.Fatalf("peer should sit at index 0 after repositioning itself")
	}
}

func TestPopulateVersionTagsStoresMarkers(t *testing.T) {
	obj := newTestObject(t, "k1")

	if err := obj.populate(VersionTagsResult("vtag-a", "vtag-b", "vtag-c"), true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}
	if obj.SiblingCount() != 3 {
		t.Fatalf("expected 3 sibling markers, got %d", obj.SiblingCount())
	}
	if obj.SiblingVTag(1) != "vtag-b" {
		t.Fatalf("unexpected marker tag: %q", obj.SiblingVTag(1))
	}
	if obj.Exists() {
		t.Fatalf("markers alone do not make the object exist")
	}
}

func TestPopulateSingleVersionTagIsNoConflict(t *testing.T) {
	obj := newTestObject(t, "k1")

	if err := obj.populate(VersionTagsResult("only-tag"), true); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}
	if obj.HasSiblings() {
		t.Fatalf("a single version tag must not report a conflict")
	}
	if obj.SiblingCount() != 0 {
		t.Fatalf("expected no sibling slots, got %d", obj.SiblingCount())
	}
}

func TestPopulateHeadSkipsPayload(t *testing.T) {
	result := VersionsResult([]byte("clock-4"), VersionContent{
		Metadata: jsonMeta(ContentTypeJSON),
		Data:     []byte(`{"name":"present"}`),
	})

	obj := newTestObject(t, "k1")
	if err := obj.populate(result, false); err != nil {
		t.Fatalf("unexpected populate error: %v", err)
	}

	if obj.Value() != nil {
		t.Fatalf("metadata-only population must not set the payload, got %v", obj.Value())
	}
	if !obj.Exists() {
		t.Fatalf("object should exist")
	}
	if string(obj.VClock()) != "clock-4" {
		t.Fatalf("vector clock should be updated")
	}
	if obj.ContentType() != ContentTypeJSON {
		t.Fatalf("metadata should be updated")
	}
}

func TestPopulateRejectsUnknownResultKind(t *testing.T) {
	obj := newTestObject(t, "k1")

	err := obj.populate(&RawResult{Kind: ResultKind(42)}, true)
	if !errors.Is(err, ErrProtocolDecode) {
		t.Fatalf("expected ErrProtocolDecode, got %v", err)
	}
}
