package kv

import (
	"context"
	"fmt"
)

// Link references another object by bucket and key, with an optional tag.
// A link may carry a transient client binding used only to fetch the linked
// object; the binding is set lazily when links are read off an object and is
// never part of link equality or serialization.
type Link struct {
	bucket string
	key    string
	tag    string
	tagged bool

	client *Client
}

// NewLink returns an untagged link to the given bucket and key.
func NewLink(bucket, key string) Link {
	return Link{bucket: bucket, key: key}
}

// NewTaggedLink returns a link carrying the given tag. An untagged link and
// a link tagged with the empty string are distinct.
func NewTaggedLink(bucket, key, tag string) Link {
	return Link{bucket: bucket, key: key, tag: tag, tagged: true}
}

// ObjectLink returns an untagged link to target, using the target's bucket
// name and key.
func ObjectLink(target *Object) Link {
	return NewLink(target.bucket.name, target.key)
}

// TaggedObjectLink returns a tagged link to target, using the target's
// bucket name and key.
func TaggedObjectLink(target *Object, tag string) Link {
	return NewTaggedLink(target.bucket.name, target.key, tag)
}

// Bucket returns the linked bucket name.
func (l Link) Bucket() string {
	return l.bucket
}

// Key returns the linked key.
func (l Link) Key() string {
	return l.key
}

// Tag returns the link tag and whether one is set.
func (l Link) Tag() (string, bool) {
	return l.tag, l.tagged
}

// Equal reports whether bucket, key and tag all match. The transient client
// binding is ignored.
func (l Link) Equal(other Link) bool {
	return l.bucket == other.bucket &&
		l.key == other.key &&
		l.tagged == other.tagged &&
		l.tag == other.tag
}

// Fetch retrieves the linked object through the client the link was read
// with. Links constructed directly carry no binding and cannot be fetched.
func (l Link) Fetch(ctx context.Context, opts GetOptions) (*Object, error) {
	if l.client == nil {
		return nil, fmt.Errorf("%w: link has no client binding", ErrInvalidArgument)
	}
	return l.client.Bucket(l.bucket).Get(ctx, l.key, opts)
}
