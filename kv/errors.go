package kv

import "errors"

var (
	// ErrEncoding indicates that a payload required encoding but no encoder
	// is registered for its content type and the payload is not already
	// textual.
	ErrEncoding = errors.New("kv: no encoder for content type")
	// ErrInvalidArgument indicates a usage error, such as removing an index
	// by value without a field, or an unsupported index value type.
	ErrInvalidArgument = errors.New("kv: invalid argument")
	// ErrProtocolDecode indicates that the transport returned a result shape
	// outside the recognized contract. It is never silently ignored.
	ErrProtocolDecode = errors.New("kv: unrecognized transport result")
)
