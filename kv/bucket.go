package kv

import "context"

// Bucket is a namespace of keys. It resolves quorum defaults for the
// operations on its objects and provides content-type codec lookup, with
// bucket-level registrations shadowing client-wide ones.
type Bucket struct {
	client   *Client
	name     string
	defaults QuorumDefaults
	encoders map[string]EncoderFunc
	decoders map[string]DecoderFunc
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Client returns the owning client.
func (b *Bucket) Client() *Client {
	return b.client
}

// SetDefaults replaces the bucket-level quorum defaults. Unset fields keep
// falling through to the client defaults.
func (b *Bucket) SetDefaults(defaults QuorumDefaults) {
	b.defaults = defaults
}

// NewObject returns an empty structured object. Payloads pass through the
// content-type codec registry; an empty key requests server-side key
// assignment on first store.
func (b *Bucket) NewObject(key string) *Object {
	return newObject(b, key, true)
}

// NewBinaryObject returns an empty binary object. Payloads bypass codecs
// and are stored as raw bytes.
func (b *Bucket) NewBinaryObject(key string) *Object {
	return newObject(b, key, false)
}

// Get constructs an object for the key and reloads it from the store.
func (b *Bucket) Get(ctx context.Context, key string, opts GetOptions) (*Object, error) {
	obj := b.NewObject(key)
	if err := obj.Reload(ctx, opts); err != nil {
		return nil, err
	}
	return obj, nil
}

// GetBinary constructs a binary object for the key and reloads it.
func (b *Bucket) GetBinary(ctx context.Context, key string, opts GetOptions) (*Object, error) {
	obj := b.NewBinaryObject(key)
	if err := obj.Reload(ctx, opts); err != nil {
		return nil, err
	}
	return obj, nil
}

// SetEncoder registers a bucket-level encoder for a content type.
func (b *Bucket) SetEncoder(contentType string, encoder EncoderFunc) {
	b.encoders[contentType] = encoder
}

// SetDecoder registers a bucket-level decoder for a content type.
func (b *Bucket) SetDecoder(contentType string, decoder DecoderFunc) {
	b.decoders[contentType] = decoder
}

// Encoder returns the encoder for a content type, preferring bucket-level
// registrations, or nil when none is registered.
func (b *Bucket) Encoder(contentType string) EncoderFunc {
	if encoder, ok := b.encoders[contentType]; ok {
		return encoder
	}
	return b.client.Encoder(contentType)
}

// Decoder returns the decoder for a content type, preferring bucket-level
// registrations, or nil when none is registered.
func (b *Bucket) Decoder(contentType string) DecoderFunc {
	if decoder, ok := b.decoders[contentType]; ok {
		return decoder
	}
	return b.client.Decoder(contentType)
}

// R resolves a read quorum: explicit value, bucket default, client default,
// then DefaultQuorum.
func (b *Bucket) R(override Quorum) Quorum {
	return override.orElse(b.defaults.R.orElse(b.client.defaults.R.orElse(DefaultQuorum)))
}

// PR resolves a primary-read quorum.
func (b *Bucket) PR(override Quorum) Quorum {
	return override.orElse(b.defaults.PR.orElse(b.client.defaults.PR.orElse(DefaultQuorum)))
}

// W resolves a write quorum.
func (b *Bucket) W(override Quorum) Quorum {
	return override.orElse(b.defaults.W.orElse(b.client.defaults.W.orElse(DefaultQuorum)))
}

// DW resolves a durable-write quorum.
func (b *Bucket) DW(override Quorum) Quorum {
	return override.orElse(b.defaults.DW.orElse(b.client.defaults.DW.orElse(DefaultQuorum)))
}

// PW resolves a primary-write quorum.
func (b *Bucket) PW(override Quorum) Quorum {
	return override.orElse(b.defaults.PW.orElse(b.client.defaults.PW.orElse(DefaultQuorum)))
}

// RW resolves a delete quorum.
func (b *Bucket) RW(override Quorum) Quorum {
	return override.orElse(b.defaults.RW.orElse(b.client.defaults.RW.orElse(DefaultQuorum)))
}
