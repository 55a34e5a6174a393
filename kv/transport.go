package kv

import "context"

// Transport performs the store round-trips on behalf of objects. The core
// never retries and adds no timeouts; cancellation and deadlines belong to
// the transport and the caller's context. Quorum values in the options are
// resolved before any transport method is invoked.
type Transport interface {
	// PutNew stores an object that has no key yet, asking the store to
	// assign one. It returns the assigned key, the resulting vector clock
	// and the stored metadata.
	PutNew(ctx context.Context, obj *Object, opts StoreOptions) (PutNewResult, error)
	// Put updates an object by key. The result is nil when no body was
	// returned.
	Put(ctx context.Context, obj *Object, opts StoreOptions) (*RawResult, error)
	// Get reads an object, optionally scoped to a version tag. A nil result
	// means the key was not found.
	Get(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error)
	// Head matches Get but must not return payload bytes.
	Head(ctx context.Context, obj *Object, opts GetOptions) (*RawResult, error)
	// Delete removes an object. Any result content is ignored by the core.
	Delete(ctx context.Context, obj *Object, opts DeleteOptions) error
}

// PutNewResult is the outcome of storing an object under a server-assigned
// key.
type PutNewResult struct {
	Key      string
	VClock   []byte
	Metadata *Metadata
}

// ResultKind classifies a transport read result into the closed set of
// recognized shapes.
type ResultKind uint8

const (
	// ResultNotFound means the key does not exist.
	ResultNotFound ResultKind = iota + 1
	// ResultVersions carries a vector clock and zero or more whole versions.
	// Zero versions is a tombstone; more than one is a sibling conflict.
	ResultVersions
	// ResultVersionTags carries only the tags of conflicting versions, to be
	// fetched individually.
	ResultVersionTags
)

// VersionContent is one whole version of an object: its metadata and
// encoded payload. Data is nil for metadata-only reads.
type VersionContent struct {
	Metadata *Metadata
	Data     []byte
}

// RawResult is the tagged union a transport read produces. Exactly the
// fields implied by Kind are meaningful; population rejects anything else
// with ErrProtocolDecode.
type RawResult struct {
	Kind     ResultKind
	VClock   []byte
	Contents []VersionContent
	VTags    []string
}

// NotFoundResult returns the not-found shape.
func NotFoundResult() *RawResult {
	return &RawResult{Kind: ResultNotFound}
}

// VersionsResult returns the single- or multi-version shape.
func VersionsResult(vclock []byte, contents ...VersionContent) *RawResult {
	return &RawResult{Kind: ResultVersions, VClock: vclock, Contents: contents}
}

// VersionTagsResult returns the unresolved-conflict shape.
func VersionTagsResult(tags ...string) *RawResult {
	return &RawResult{Kind: ResultVersionTags, VTags: tags}
}
