package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-bloglist-api/internal/event"
)

// EventRepository is an append-only log of domain events.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Append(ctx context.Context, e event.Event) error {
	var payload []byte
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		payload = raw
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO domain_events (id, type, actor_id, payload, occurred_at)
		 VALUES ($1, $2, $3, $4, $5::timestamptz)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID, string(e.Type), e.ActorID, payload, e.Timestamp)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}
