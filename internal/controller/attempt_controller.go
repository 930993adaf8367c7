// internal/controller/attempt_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/mailsched/mailsched-backend/internal/service"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

// List serves the attempt ledger visible to the actor, newest first.
func (c *AttemptController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "no actor on request", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	attempts, pagination, err := c.AttemptService.List(actor, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       attempts,
		"pagination": pagination,
	})
}
