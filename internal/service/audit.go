package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
)

// AuditService records admin actions. Recording is best-effort: a
// failed write is logged and never blocks the action itself.
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) Record(userID *string, action, entity, entityID, detail string) {
	entry := &model.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	err := s.auditRepo.Create(entry)
	if err != nil {
		slog.Error("failed to record audit log entry", "error", err, "action", action, "entity", entity)
	}
}

func (s *AuditService) Recent(limit int) ([]*model.AuditLog, error) {
	return s.auditRepo.Recent(limit)
}
