package repository

import (
	"github.com/fastopp/fastopp/internal/model"
	"github.com/jmoiron/sqlx"
)

type AuditLogRepository interface {
	Create(entry *model.AuditLog) error
	Recent(limit int) ([]*model.AuditLog, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(entry *model.AuditLog) error {
	query := `INSERT INTO audit_logs (id, user_id, action, entity, entity_id, detail, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, entry.ID, entry.UserID, entry.Action, entry.Entity, entry.EntityID, entry.Detail, entry.CreatedAt)
	return err
}

func (r *auditLogRepository) Recent(limit int) ([]*model.AuditLog, error) {
	var entries []*model.AuditLog
	query := `SELECT * FROM audit_logs ORDER BY created_at DESC LIMIT $1`

	err := r.db.Select(&entries, query, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
