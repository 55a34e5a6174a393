package kv

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errMissingTransport = errors.New("transport is required")
	noOpLogger          = zap.NewNop()
)

// ClientConfig carries the dependencies for a Client.
type ClientConfig struct {
	// Transport performs the actual store round-trips. Required.
	Transport Transport
	// Logger receives structured operation logs. Optional; defaults to a
	// no-op logger.
	Logger *zap.Logger
	// ClientID identifies this writer for causality purposes. Optional;
	// defaults to a generated UUID.
	ClientID string
	// Defaults are the client-wide quorum fallbacks, used when neither the
	// operation nor the bucket specifies a value.
	Defaults QuorumDefaults
}

// Client binds buckets and objects to a transport. It also holds the
// client-wide codec registry, seeded with JSON and msgpack codecs, and the
// client-wide quorum defaults.
type Client struct {
	transport Transport
	logger    *zap.Logger
	clientID  string
	defaults  QuorumDefaults
	encoders  map[string]EncoderFunc
	decoders  map[string]DecoderFunc
}

// NewClient validates the configuration and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Transport == nil {
		return nil, fmt.Errorf("kv: new client: %w", errMissingTransport)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	return &Client{
		transport: cfg.Transport,
		logger:    logger,
		clientID:  clientID,
		defaults:  cfg.Defaults,
		encoders:  defaultEncoders(),
		decoders:  defaultDecoders(),
	}, nil
}

// ID returns the writer identity used for causality by transports.
func (c *Client) ID() string {
	return c.clientID
}

// Transport returns the configured transport.
func (c *Client) Transport() Transport {
	return c.transport
}

// Bucket returns a handle on the named bucket.
func (c *Client) Bucket(name string) *Bucket {
	return &Bucket{
		client:   c,
		name:     name,
		encoders: make(map[string]EncoderFunc),
		decoders: make(map[string]DecoderFunc),
	}
}

// SetEncoder registers a client-wide encoder for a content type.
func (c *Client) SetEncoder(contentType string, encoder EncoderFunc) {
	c.encoders[contentType] = encoder
}

// SetDecoder registers a client-wide decoder for a content type.
func (c *Client) SetDecoder(contentType string, decoder DecoderFunc) {
	c.decoders[contentType] = decoder
}

// Encoder returns the client-wide encoder for a content type, or nil.
func (c *Client) Encoder(contentType string) EncoderFunc {
	return c.encoders[contentType]
}

// Decoder returns the client-wide decoder for a content type, or nil.
func (c *Client) Decoder(contentType string) DecoderFunc {
	return c.decoders[contentType]
}

func (c *Client) logDebug(message string, fields ...zap.Field) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Debug(message, fields...)
}
