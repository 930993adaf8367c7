package service_test

import (
	"testing"
	"time"

	"github.com/mailsched/mailsched-backend/internal/model"
	"github.com/mailsched/mailsched-backend/internal/service"
)

func TestComputeStatus(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want model.MailingStatus
	}{
		{"well before start", start.Add(-24 * time.Hour), model.StatusCreated},
		{"just before start", start.Add(-time.Nanosecond), model.StatusCreated},
		{"exactly at start", start, model.StatusRunning},
		{"inside window", start.Add(90 * time.Minute), model.StatusRunning},
		{"exactly at end", end, model.StatusRunning},
		{"just after end", end.Add(time.Nanosecond), model.StatusFinished},
		{"well after end", end.Add(24 * time.Hour), model.StatusFinished},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.ComputeStatus(start, end, tc.now)
			if got != tc.want {
				t.Errorf("ComputeStatus(%v) = %q, want %q", tc.now, got, tc.want)
			}
			// pure: same inputs, same output
			if again := service.ComputeStatus(start, end, tc.now); again != got {
				t.Errorf("ComputeStatus not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestComputeStatusDegenerateWindow(t *testing.T) {
	// start == end: the window is the single instant
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := service.ComputeStatus(at, at, at); got != model.StatusRunning {
		t.Errorf("expected running at the single-instant window, got %q", got)
	}
}

func TestInWindow(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	if service.InWindow(start, end, start.Add(-time.Minute)) {
		t.Error("expected out of window before start")
	}
	if !service.InWindow(start, end, start.Add(time.Hour)) {
		t.Error("expected in window between start and end")
	}
	if !service.InWindow(start, end, end) {
		t.Error("window end is inclusive")
	}
	if service.InWindow(start, end, end.Add(time.Minute)) {
		t.Error("expected out of window after end")
	}
}
