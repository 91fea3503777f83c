package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kotovdv/tweetwatch/internal/search"
)

func TestMockClient_Fetch(t *testing.T) {
	resp := &search.RawResponse{Data: []search.RawPost{
		{ID: "1", Text: "first"},
		{ID: "2", Text: "second"},
	}}

	client := New().WithResponse(resp)

	raw, err := client.Fetch(context.Background(), "test", 10)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(raw.Data) != 2 {
		t.Errorf("Fetch() got %d records, want 2", len(raw.Data))
	}
	if client.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", client.CallCount)
	}
	if client.LastQuery != "test" || client.LastLimit != 10 {
		t.Errorf("recorded call = (%q, %d), want (test, 10)", client.LastQuery, client.LastLimit)
	}
}

func TestMockClient_DefaultsToEmptyResponse(t *testing.T) {
	client := New()

	raw, err := client.Fetch(context.Background(), "test", 10)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	posts := client.Normalize(raw)
	if posts == nil || len(posts) != 0 {
		t.Errorf("Normalize() = %v, want empty slice", posts)
	}
}

func TestMockClient_Error(t *testing.T) {
	wantErr := errors.New("boom")
	client := New().WithError(wantErr)

	_, err := client.Fetch(context.Background(), "test", 10)
	if err != wantErr {
		t.Errorf("Fetch() error = %v, want the configured error unchanged", err)
	}
	if len(client.HandledErrors) != 1 || client.HandledErrors[0] != wantErr {
		t.Errorf("HandledErrors = %v, want the propagated error observed once", client.HandledErrors)
	}
}

func TestMockClient_Validation(t *testing.T) {
	client := New()

	if _, err := client.Fetch(context.Background(), "  ", 10); err != search.ErrEmptyQuery {
		t.Errorf("Fetch() error = %v, want ErrEmptyQuery", err)
	}
	if _, err := client.Fetch(context.Background(), "test", 0); err != search.ErrInvalidLimit {
		t.Errorf("Fetch() error = %v, want ErrInvalidLimit", err)
	}
}

func TestMockClient_Delay(t *testing.T) {
	client := New().WithDelay(50 * time.Millisecond)

	start := time.Now()
	_, err := client.Fetch(context.Background(), "test", 10)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("Fetch() elapsed = %v, want >= 50ms", elapsed)
	}
}

func TestMockClient_ContextCancellation(t *testing.T) {
	client := New().WithDelay(1 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, "test", 10)
	if err != context.DeadlineExceeded {
		t.Errorf("Fetch() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestMockClient_Reset(t *testing.T) {
	client := New().WithError(errors.New("boom"))
	client.Fetch(context.Background(), "test", 10)

	client.Reset()

	if client.CallCount != 0 || client.LastQuery != "" || client.HandledErrors != nil {
		t.Errorf("Reset() left state behind: %+v", client)
	}
}
