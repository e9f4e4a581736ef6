package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryFirstTrySucceeds(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expect 1 call, got %d", calls)
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expect 3 calls, got %d", calls)
	}
}

func TestRetryExhaustedWrapsLastError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return boom
	})
	if calls != 3 {
		t.Fatalf("expect 3 calls, got %d", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expect wrapped boom, got %v", err)
	}
	if err == boom {
		t.Fatalf("exhausted error should be wrapped, not the bare cause")
	}
}

func TestRetrySingleAttemptErrorNotWrapped(t *testing.T) {
	boom := errors.New("boom")
	err := Retry(context.Background(), 1, time.Millisecond, func() error { return boom })
	if err != boom {
		t.Fatalf("single attempt should return the cause as-is, got %v", err)
	}
}

func TestRetryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expect context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("canceled context should skip the call, got %d", calls)
	}
}

func TestRetryCancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expect context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expect 1 call before cancel stops the backoff wait, got %d", calls)
	}
}

func TestRetryDefaultsZeroAttempts(t *testing.T) {
	calls := 0
	if err := Retry(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 1 {
		t.Fatalf("zero attempts should normalize to one, got %d", calls)
	}
}
