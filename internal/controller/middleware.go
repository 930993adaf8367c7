// internal/controller/middleware.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/mailsched/mailsched-backend/internal/access"
	"github.com/mailsched/mailsched-backend/internal/repository"
)

// ActorMiddleware resolves the acting user once per request and puts an
// access.Actor with its role on the context. The X-User-ID header
// stands in for the session the excluded auth layer would provide.
type ActorMiddleware struct {
	UserRepo repository.UserRepositoryInterface
}

func (m *ActorMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.Header.Get("X-User-ID"))
		if err != nil {
			http.Error(w, "missing or invalid X-User-ID header", http.StatusUnauthorized)
			return
		}

		user, err := m.UserRepo.GetByID(id)
		if err != nil {
			http.Error(w, "failed to resolve user", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "unknown user", http.StatusUnauthorized)
			return
		}

		role := access.RoleOwner
		if user.IsManager {
			role = access.RoleManager
		}

		ctx := access.WithActor(r.Context(), access.Actor{UserID: user.ID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(r *http.Request) (access.Actor, bool) {
	return access.ActorFrom(r.Context())
}
