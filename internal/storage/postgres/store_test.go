package postgres

import (
	"context"
	"testing"
)

func TestNewStoreRequiresDSN(t *testing.T) {
	if _, err := NewStore(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestNumeric(t *testing.T) {
	if got := numeric(""); got != "0" {
		t.Fatalf("expected 0, got %s", got)
	}
	if got := numeric("12.5"); got != "12.5" {
		t.Fatalf("expected 12.5, got %s", got)
	}
}
