package explainer

import (
	"context"
	"errors"
	"time"

	apperrors "codeberg.org/codeexplainer/server/internal/errors"
	"codeberg.org/codeexplainer/server/internal/logger"
)

// Explainer drives sessions through one backend.
type Explainer struct {
	backend Backend
}

// creates a new explainer backed by the given backend
func New(backend Backend) *Explainer {
	return &Explainer{backend: backend}
}

// Run dispatches the action and blocks until the backend call settles. The
// returned state is the session snapshot afterwards, which may already
// reflect a newer action if this one was superseded.
func (e *Explainer) Run(ctx context.Context, session *Session, action Action) State {
	ticket, err := session.Begin(ctx, action)
	if err != nil {
		if !errors.Is(err, ErrEmptyCode) {
			logger.FromContext(ctx).Warn("action rejected", "action", action, "error", err)
		}
		return session.Snapshot()
	}

	return e.Execute(session, ticket)
}

// Execute performs the backend call for a ticket obtained from Begin and
// routes the outcome into the session.
func (e *Explainer) Execute(session *Session, ticket *Ticket) State {
	ctx := ticket.Context()
	log := logger.FromContext(ctx).With("action", ticket.Action, "seq", ticket.Seq)

	start := time.Now()
	result, err := e.backend.Ask(ctx, ticket.Code, ticket.Instruction)
	elapsed := time.Since(start)

	if err != nil {
		if !session.Fail(ticket, err) {
			log.Debug("dropped failure of superseded request", "error", err)
			return session.Snapshot()
		}

		log.Error("backend request failed",
			"error", err,
			"category", apperrors.Classify(err),
			"elapsed", elapsed,
		)
		return session.Snapshot()
	}

	if !session.Complete(ticket, result) {
		log.Debug("dropped result of superseded request", "elapsed", elapsed)
		return session.Snapshot()
	}

	log.Info("backend request completed", "elapsed", elapsed, "result_bytes", len(result))
	return session.Snapshot()
}
