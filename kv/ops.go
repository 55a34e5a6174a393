package kv

import (
	"context"

	"go.uber.org/zap"
)

// Store writes the object. With no key assigned, the store generates one
// and the object adopts the returned key, vector clock and metadata. With a
// key, the write goes by key, and a returned body — requested or produced
// by conflict detection — reconciles the object through the same population
// path as reads. A failed or cancelled transport call leaves the object in
// its pre-call state.
func (o *Object) Store(ctx context.Context, opts StoreOptions) error {
	opts.W = o.bucket.W(opts.W)
	opts.DW = o.bucket.DW(opts.DW)
	opts.PW = o.bucket.PW(opts.PW)

	client := o.bucket.client
	if o.key == "" {
		result, err := client.transport.PutNew(ctx, o, opts)
		if err != nil {
			return err
		}
		o.key = result.Key
		o.vclock = result.VClock
		o.SetMetadata(result.Metadata)
		o.exists = true
		client.logDebug("object stored under generated key",
			zap.String("bucket", o.bucket.name),
			zap.String("key", o.key))
		return nil
	}

	result, err := client.transport.Put(ctx, o, opts)
	if err != nil {
		return err
	}
	if result != nil {
		if err := o.populate(result, true); err != nil {
			return err
		}
	}
	client.logDebug("object stored",
		zap.String("bucket", o.bucket.name),
		zap.String("key", o.key),
		zap.Int("siblings", o.SiblingCount()))
	return nil
}

// Reload clears the object and repopulates it from a fresh read, optionally
// scoped to a version tag. On return the object's state exactly reflects
// the store's response. A failed or cancelled transport call leaves the
// object in its pre-call state.
func (o *Object) Reload(ctx context.Context, opts GetOptions) error {
	opts.R = o.bucket.R(opts.R)
	opts.PR = o.bucket.PR(opts.PR)

	result, err := o.bucket.client.transport.Get(ctx, o, opts)
	if err != nil {
		return err
	}
	return o.populate(result, true)
}

// Head matches Reload but never populates the payload; only metadata and
// the vector clock are refreshed.
func (o *Object) Head(ctx context.Context, opts GetOptions) error {
	opts.R = o.bucket.R(opts.R)
	opts.PR = o.bucket.PR(opts.PR)

	result, err := o.bucket.client.transport.Head(ctx, o, opts)
	if err != nil {
		return err
	}
	return o.populate(result, false)
}

// Delete removes the object from the store and unconditionally clears the
// local state to non-existent, whatever the store responded with. The
// vector clock is retained until the next read.
func (o *Object) Delete(ctx context.Context, opts DeleteOptions) error {
	opts.RW = o.bucket.RW(opts.RW)
	opts.R = o.bucket.R(opts.R)
	opts.W = o.bucket.W(opts.W)
	opts.DW = o.bucket.DW(opts.DW)
	opts.PR = o.bucket.PR(opts.PR)
	opts.PW = o.bucket.PW(opts.PW)

	client := o.bucket.client
	if err := client.transport.Delete(ctx, o, opts); err != nil {
		return err
	}
	o.Clear()
	client.logDebug("object deleted",
		zap.String("bucket", o.bucket.name),
		zap.String("key", o.key))
	return nil
}
