// internal/access/access.go
package access

import (
	"context"

	"github.com/mailsched/mailsched-backend/internal/model"
)

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
)

// Actor is the identity an operation runs as. The role is resolved once
// per request (from users.is_manager) and passed down; it is never
// re-queried inside the policy checks.
type Actor struct {
	UserID int
	Role   Role
}

func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}

// CanView reports whether the actor may read an entity owned by ownerID.
// Managers read everything; owners read their own rows only.
func CanView(a Actor, ownerID int) bool {
	return a.IsManager() || a.UserID == ownerID
}

// CanMutate reports whether the actor may create, edit or delete an
// entity owned by ownerID. Managers are read-only: they may not mutate
// anything, including rows they happen to own themselves.
func CanMutate(a Actor, ownerID int) bool {
	return !a.IsManager() && a.UserID == ownerID
}

// CanTrigger reports whether the actor may trigger a send pass for the
// mailing. Same rule as mutation; the active flag is checked separately
// by the delivery engine, independent of role.
func CanTrigger(a Actor, m *model.Mailing) bool {
	return CanMutate(a, m.OwnerID)
}

// CanToggleActive reports whether the actor may flip a mailing's active
// flag. This is the manager kill-switch and the only write managers get.
func CanToggleActive(a Actor) bool {
	return a.IsManager()
}

type actorKey struct{}

// WithActor stores the resolved actor on the request context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom extracts the actor placed on the context by the middleware.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
