package cache

import (
	"context"
	"testing"
)

func TestConnectAcceptsBothAddressForms(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	client, err := Connect(ctx, "redis://:secret@redis.internal:6380/2")
	if err != nil {
		t.Fatalf("url form: %v", err)
	}
	opt := client.Options()
	if opt.Addr != "redis.internal:6380" || opt.DB != 2 || opt.Password != "secret" {
		t.Fatalf("url not applied: %+v", opt)
	}
	if opt.ClientName != clientName {
		t.Fatalf("client name not set: %q", opt.ClientName)
	}

	client, err = Connect(ctx, "localhost:6379")
	if err != nil {
		t.Fatalf("host:port form: %v", err)
	}
	if client.Options().Addr != "localhost:6379" {
		t.Fatalf("bare addr not applied: %q", client.Options().Addr)
	}

	if _, err := Connect(ctx, "redis://invalid url %%"); err == nil {
		t.Fatalf("malformed url must be rejected")
	}
}
