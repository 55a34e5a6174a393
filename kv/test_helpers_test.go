package kv

import (
	"context"
	"testing"
)

// fakeTransport implements Transport with overridable hooks, so tests can
// script the store's responses and capture the options an operation
// resolved.
type fakeTransport struct {
	putNewFn func(ctx context.Context, obj *Object, opts StoreOptions) (PutNewResult, error)
	putFn    func(ctx context.Context, obj *Object, opts StoreOptions) (*RawResult, error)
	getFn    func(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error)
	headFn   func(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error)
	deleteFn func(ctx context.Context, obj *Object, opts DeleteOptions) error
}

func (f *fakeTransport) PutNew(ctx context.Context, obj *Object, opts StoreOptions) (PutNewResult, error) {
	if f.putNewFn == nil {
		return PutNewResult{}, nil
	}
	return f.putNewFn(ctx, obj, opts)
}

func (f *fakeTransport) Put(ctx context.Context, obj *Object, opts StoreOptions) (*RawResult, error) {
	if f.putFn == nil {
		return nil, nil
	}
	return f.putFn(ctx, obj, opts)
}

func (f *fakeTransport) Get(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error) {
	if f.getFn == nil {
		return nil, nil
	}
	return f.getFn(ctx, obj, opts)
}

func (f *fakeTransport) Head(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error) {
	if f.headFn == nil {
		return nil, nil
	}
	return f.headFn(ctx, obj, opts)
}

func (f *fakeTransport) Delete(ctx context.Context, obj *Object, opts DeleteOptions) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, obj, opts)
}

func newTestClient(t *testing.T, transport Transport) *Client {
	t.Helper()
	if transport == nil {
		transport = &fakeTransport{}
	}
	client, err := NewClient(ClientConfig{Transport: transport, ClientID: "test-client"})
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	return client
}

func newTestObject(t *testing.T, key string) *Object {
	t.Helper()
	return newTestClient(t, nil).Bucket("things").NewObject(key)
}

func mustIndexEntry(t *testing.T, field string, value any) IndexEntry {
	t.Helper()
	entry, err := NewIndexEntry(field, value)
	if err != nil {
		t.Fatalf("unexpected index entry error: %v", err)
	}
	return entry
}

func jsonMeta(contentType string) *Metadata {
	meta := NewMetadata()
	meta.SetContentType(contentType)
	return meta
}
