package contract

import (
	"context"

	"mindly-be/internal/entity"
	"mindly-be/pkg/wellness"
)

// SessionRepository keeps conversation history and the metrics log per session.
// Returned sessions are snapshots; mutations go through AppendTurn only.
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sessionId string) (*entity.Session, error)
	Get(ctx context.Context, sessionId string) (*entity.Session, bool, error)
	// AppendTurn appends the user message, the bot reply and a metrics entry
	// as one atomic step and returns the stored entry.
	AppendTurn(ctx context.Context, sessionId, userMessage, botReply string, metrics wellness.Metrics) (entity.MetricsEntry, error)
}
