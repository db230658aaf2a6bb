package model

import (
	"time"
)

type AuditLog struct {
	ID       string  `db:"id" json:"id"`
	UserID   *string `db:"user_id" json:"user_id,omitempty"`
	Action   string  `db:"action" json:"action"`
	Entity   string  `db:"entity" json:"entity"`
	EntityID string  `db:"entity_id" json:"entity_id"`
	Detail   string  `db:"detail" json:"detail"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
