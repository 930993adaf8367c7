// internal/controller/sweep_controller.go
package controller

import (
	"net/http"
	"time"

	appErrors "github.com/mailsched/mailsched-backend/internal/errors"
	"github.com/mailsched/mailsched-backend/internal/service"
)

// SweepController exposes the due sweep as an on-demand trigger,
// alongside the cron-driven sweeper process.
type SweepController struct {
	SweepService *service.SweepService
	Now          func() time.Time
}

// Run triggers a full due sweep. Manager only: the sweep crosses tenant
// boundaries.
func (c *SweepController) Run(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "no actor on request", http.StatusUnauthorized)
		return
	}
	if !actor.IsManager() {
		writeError(w, appErrors.NewAccessDenied("only managers may run a sweep"))
		return
	}

	now := time.Now().UTC()
	if c.Now != nil {
		now = c.Now()
	}

	result, err := c.SweepService.RunAllDue(now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
