package kv

// Quorum is the number of replicas that must acknowledge a read or write
// before the store responds. The zero value means "unspecified": it resolves
// to the bucket default, then the client default, then DefaultQuorum.
// Resolution happens once at the start of each operation; transports always
// receive fully resolved values.
type Quorum int

const (
	// QuorumUnset resolves to the bucket, client or system default.
	QuorumUnset Quorum = 0
	// QuorumOne requires a single replica acknowledgement.
	QuorumOne Quorum = 1
	// DefaultQuorum is the system-wide fallback when neither the operation,
	// the bucket nor the client specifies a value.
	DefaultQuorum Quorum = 2
)

// orElse returns q if set, otherwise fallback.
func (q Quorum) orElse(fallback Quorum) Quorum {
	if q > QuorumUnset {
		return q
	}
	return fallback
}

// QuorumDefaults carries per-bucket or per-client default quorum values.
// Unset fields fall through to the next level.
type QuorumDefaults struct {
	R  Quorum
	PR Quorum
	W  Quorum
	DW Quorum
	PW Quorum
	RW Quorum
}

// StoreOptions parameterizes Object.Store. Use DefaultStoreOptions as the
// base: the zero value requests no returned body, which is rarely wanted.
type StoreOptions struct {
	W  Quorum
	DW Quorum
	PW Quorum
	// ReturnBody requests that the stored object be read back, so the write
	// reconciles the local copy (and can discover sibling conflicts).
	ReturnBody bool
	// IfNoneMatch asks the store to refuse the write if the key already
	// exists. The precondition is enforced by the store, not locally.
	IfNoneMatch bool
}

// DefaultStoreOptions returns store options with ReturnBody enabled and all
// quorums unset.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{ReturnBody: true}
}

// GetOptions parameterizes Object.Reload, Object.Head and sibling fetches.
type GetOptions struct {
	R  Quorum
	PR Quorum
	// VTag scopes the read to a specific conflicting version.
	VTag string
}

// DeleteOptions parameterizes Object.Delete.
type DeleteOptions struct {
	RW Quorum
	R  Quorum
	W  Quorum
	DW Quorum
	PR Quorum
	PW Quorum
}
