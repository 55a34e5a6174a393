package kv

import (
	"testing"
)

func TestNewClientRequiresTransport(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatalf("expected an error without a transport")
	}
}

func TestNewClientGeneratesClientID(t *testing.T) {
	client, err := NewClient(ClientConfig{Transport: &fakeTransport{}})
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	if client.ID() == "" {
		t.Fatalf("client id should be generated when unset")
	}

	other, err := NewClient(ClientConfig{Transport: &fakeTransport{}})
	if err != nil {
		t.Fatalf("unexpected client error: %v", err)
	}
	if client.ID() == other.ID() {
		t.Fatalf("generated client ids should differ")
	}
}

func TestBucketHandlesShareClientRegistry(t *testing.T) {
	client := newTestClient(t, &fakeTransport{})
	client.SetDecoder("application/x-custom", func(data []byte) (any, error) {
		return string(data), nil
	})

	bucket := client.Bucket("things")
	if bucket.Decoder("application/x-custom") == nil {
		t.Fatalf("buckets should see client codecs")
	}
	if bucket.Name() != "things" {
		t.Fatalf("unexpected bucket name: %q", bucket.Name())
	}
	if bucket.Client() != client {
		t.Fatalf("bucket must point back at its client")
	}
}
