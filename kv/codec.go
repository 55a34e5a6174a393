package kv

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Content types with built-in codecs, plus the default for binary objects.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeMsgpack     = "application/x-msgpack"
	ContentTypeOctetStream = "application/octet-stream"
)

// EncoderFunc serializes a decoded payload value for storage.
type EncoderFunc func(value any) ([]byte, error)

// DecoderFunc deserializes stored payload bytes into a value.
type DecoderFunc func(data []byte) (any, error)

func defaultEncoders() map[string]EncoderFunc {
	return map[string]EncoderFunc{
		ContentTypeJSON: func(value any) ([]byte, error) {
			return json.Marshal(value)
		},
		ContentTypeMsgpack: func(value any) ([]byte, error) {
			return msgpack.Marshal(value)
		},
	}
}

func defaultDecoders() map[string]DecoderFunc {
	return map[string]DecoderFunc{
		ContentTypeJSON: func(data []byte) (any, error) {
			var value any
			if err := json.Unmarshal(data, &value); err != nil {
				return nil, err
			}
			return value, nil
		},
		ContentTypeMsgpack: func(data []byte) (any, error) {
			var value any
			if err := msgpack.Unmarshal(data, &value); err != nil {
				return nil, err
			}
			return value, nil
		},
	}
}
