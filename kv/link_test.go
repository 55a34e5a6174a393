package kv

import (
	"context"
	"errors"
	"testing"
)

func TestLinkEquality(t *testing.T) {
	tests := []struct {
		name  string
		left  Link
		right Link
		equal bool
	}{
		{
			name:  "same-bucket-key-untagged",
			left:  NewLink("things", "k1"),
			right: NewLink("things", "k1"),
			equal: true,
		},
		{
			name:  "same-tag",
			left:  NewTaggedLink("things", "k1", "next"),
			right: NewTaggedLink("things", "k1", "next"),
			equal: true,
		},
		{
			name:  "different-tag",
			left:  NewTaggedLink("things", "k1", "next"),
			right: NewTaggedLink("things", "k1", "prev"),
			equal: false,
		},
		{
			name:  "untagged-differs-from-empty-tag",
			left:  NewLink("things", "k1"),
			right: NewTaggedLink("things", "k1", ""),
			equal: false,
		},
		{
			name:  "different-key",
			left:  NewLink("things", "k1"),
			right: NewLink("things", "k2"),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.left.Equal(tt.right); got != tt.equal {
				t.Fatalf("Equal = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestAddLinkReplacesSameTarget(t *testing.T) {
	client := newTestClient(t, nil)
	bucket := client.Bucket("things")
	obj := bucket.NewObject("k1")
	target := bucket.NewObject("k2")

	obj.AddLink(TaggedObjectLink(target, "t1"))
	obj.AddLink(TaggedObjectLink(target, "t1"))

	links := obj.Links()
	if len(links) != 1 {
		t.Fatalf("expected a single link, got %d", len(links))
	}
	if tag, ok := links[0].Tag(); !ok || tag != "t1" {
		t.Fatalf("unexpected tag: %q %v", tag, ok)
	}

	// Retagging the same target replaces the link; the new tag wins.
	obj.AddLink(TaggedObjectLink(target, "t2"))
	links = obj.Links()
	if len(links) != 1 {
		t.Fatalf("expected a single link after retagging, got %d", len(links))
	}
	if tag, ok := links[0].Tag(); !ok || tag != "t2" {
		t.Fatalf("unexpected tag after retagging: %q %v", tag, ok)
	}

	// A link to a different key is a distinct target and both survive.
	obj.AddLink(TaggedObjectLink(bucket.NewObject("k3"), "t2"))
	if len(obj.Links()) != 2 {
		t.Fatalf("expected 2 links to distinct targets, got %d", len(obj.Links()))
	}
}

func TestRemoveLinkIsIdempotent(t *testing.T) {
	client := newTestClient(t, nil)
	bucket := client.Bucket("things")
	obj := bucket.NewObject("k1")
	target := bucket.NewObject("k2")

	obj.AddLink(ObjectLink(target))
	obj.RemoveLink(ObjectLink(target))
	obj.RemoveLink(ObjectLink(target))

	if len(obj.Links()) != 0 {
		t.Fatalf("expected no links, got %v", obj.Links())
	}
}

func TestSetLinksNormalizesSources(t *testing.T) {
	client := newTestClient(t, nil)
	bucket := client.Bucket("things")
	obj := bucket.NewObject("k1")
	first := bucket.NewObject("k2")
	second := bucket.NewObject("k3")

	obj.SetLinks(
		ObjectLink(first),
		TaggedObjectLink(second, "child"),
		NewTaggedLink("other", "k9", "far"),
	)

	links := obj.Links()
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	if links[0].Bucket() != "things" || links[0].Key() != "k2" {
		t.Fatalf("unexpected first link: %#v", links[0])
	}
	if _, ok := links[0].Tag(); ok {
		t.Fatalf("first link should be untagged")
	}
	if tag, ok := links[1].Tag(); !ok || tag != "child" {
		t.Fatalf("unexpected second link tag")
	}
	if links[2].Bucket() != "other" {
		t.Fatalf("unexpected third link: %#v", links[2])
	}
}

func TestLinksCarryClientBinding(t *testing.T) {
	target := VersionsResult([]byte("vc"), VersionContent{
		Metadata: jsonMeta(ContentTypeJSON),
		Data:     []byte(`{"name":"next"}`),
	})
	transport := &fakeTransport{
		getFn: func(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error) {
			return target, nil
		},
	}
	client := newTestClient(t, transport)
	bucket := client.Bucket("things")
	obj := bucket.NewObject("k1")
	obj.AddLink(NewTaggedLink("things", "k2", "next"))

	links := obj.Links()
	linked, err := links[0].Fetch(context.Background(), GetOptions{})
	if err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	if !linked.Exists() || linked.Key() != "k2" {
		t.Fatalf("unexpected linked object: exists=%v key=%q", linked.Exists(), linked.Key())
	}
}

func TestFetchWithoutBindingFails(t *testing.T) {
	link := NewLink("things", "k2")
	if _, err := link.Fetch(context.Background(), GetOptions{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
