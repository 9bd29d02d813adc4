package clock

import (
	"context"
	"testing"
	"time"
)

func TestCallFormatsDate(t *testing.T) {
	tool := New()
	tool.Now = func() time.Time {
		return time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)
	}

	out, err := tool.Call(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2026-03-10 (Tuesday, March 10, 2026)" {
		t.Errorf("unexpected output: %q", out)
	}
}
