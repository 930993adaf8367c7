// internal/service/status.go
package service

import (
	"time"

	"github.com/mailsched/mailsched-backend/internal/model"
)

// ComputeStatus derives a mailing's lifecycle state from its window and
// the current instant. Pure and total: no side effects, no error case.
// Stored rows never carry a status; this runs on every read.
func ComputeStatus(start, end, now time.Time) model.MailingStatus {
	if now.Before(start) {
		return model.StatusCreated
	}
	if now.After(end) {
		return model.StatusFinished
	}
	return model.StatusRunning
}

// InWindow reports whether now falls inside the inclusive [start, end]
// send window.
func InWindow(start, end, now time.Time) bool {
	return ComputeStatus(start, end, now) == model.StatusRunning
}
