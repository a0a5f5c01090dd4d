// Package service holds the business rules behind the gRPC handlers: who may
// assign or remove todo managers, account signup and password rules, and the
// plain todo and comment flows. Callers pass the verified auth.Identity
// explicitly; nothing here reads request context values.
package service

import (
	"context"

	"github.com/charmbracelet/log"

	"todoManagement/internal/events"
)

// UserView is the public projection of a user.
type UserView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// publish sends ev. Failures are logged and never fail the calling operation.
func publish(ctx context.Context, p events.Publisher, logger *log.Logger, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil && logger != nil {
		logger.Warn("event publish failed", "event", ev.Type, "key", ev.Key, "err", err)
	}
}
