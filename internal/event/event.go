package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBlogCreated Type = "blog.created"
	TypeBlogDeleted Type = "blog.deleted"
	TypeBlogLiked   Type = "blog.liked"
	TypeUserCreated Type = "user.created"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}

func New(typ Type, actorID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		ActorID:   actorID,
	}
}
