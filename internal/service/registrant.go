package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/storage"
)

// Result is the structured outcome of a registrant operation. Errors
// never escape this boundary raw; the HTTP layer renders Message
// without knowing the storage taxonomy.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

type RegistrantService struct {
	registrantRepo repository.RegistrantRepository
	photoStore     storage.Storage
	audit          *AuditService
}

func NewRegistrantService(registrantRepo repository.RegistrantRepository, photoStore storage.Storage, audit *AuditService) *RegistrantService {
	return &RegistrantService{
		registrantRepo: registrantRepo,
		photoStore:     photoStore,
		audit:          audit,
	}
}

func (s *RegistrantService) ByID(id string) (*model.WebinarRegistrant, error) {
	return s.registrantRepo.ByID(id)
}

func (s *RegistrantService) All() ([]*model.WebinarRegistrant, error) {
	return s.registrantRepo.All()
}

func (s *RegistrantService) Create(registrant *model.WebinarRegistrant) error {
	if registrant.ID == "" {
		registrant.ID = uuid.New().String()
	}
	now := time.Now()
	if registrant.RegistrationDate.IsZero() {
		registrant.RegistrationDate = now
	}
	if registrant.CreatedAt.IsZero() {
		registrant.CreatedAt = now
	}
	if registrant.Status == "" {
		registrant.Status = model.RegistrantStatusRegistered
	}
	return s.registrantRepo.Create(registrant)
}

func (s *RegistrantService) Update(registrant *model.WebinarRegistrant) error {
	return s.registrantRepo.Update(registrant)
}

func (s *RegistrantService) Delete(id string) error {
	return s.registrantRepo.Delete(id)
}

// UploadPhoto stores the photo bytes and points the registrant at the
// resulting URL. A re-upload overwrites the reference; the previous
// object is orphaned, not deleted.
func (s *RegistrantService) UploadPhoto(ctx context.Context, actorID *string, registrantID string, content []byte, filename string) Result {
	_, err := s.registrantRepo.ByID(registrantID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrantNotFound) {
			return failure("Registrant not found")
		}
		slog.Error("failed to load registrant for photo upload", "error", err, "registrant_id", registrantID)
		return failure("Failed to upload photo")
	}

	url, err := s.photoStore.Put(ctx, content, filename)
	if err != nil {
		slog.Error("photo upload failed", "error", err, "registrant_id", registrantID)

		var cfgErr *storage.ConfigError
		if errors.As(err, &cfgErr) {
			return failure("Storage is not configured")
		}
		return failure("Failed to upload photo")
	}

	err = s.registrantRepo.UpdatePhotoURL(registrantID, &url)
	if err != nil {
		slog.Error("failed to save photo URL", "error", err, "registrant_id", registrantID, "url", url)
		return failure("Failed to upload photo")
	}

	s.audit.Record(actorID, "upload_photo", "webinar_registrant", registrantID, url)
	return Result{Success: true, Message: "Photo uploaded successfully", PhotoURL: url}
}

// DeletePhoto removes the registrant's photo reference and ensures the
// local file is absent. An already-missing file is fine; a registrant
// without a photo is reported as a failure.
func (s *RegistrantService) DeletePhoto(ctx context.Context, actorID *string, registrantID string) Result {
	registrant, err := s.registrantRepo.ByID(registrantID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrantNotFound) {
			return failure("Registrant not found")
		}
		slog.Error("failed to load registrant for photo delete", "error", err, "registrant_id", registrantID)
		return failure("Failed to delete photo")
	}

	if registrant.PhotoURL == nil || *registrant.PhotoURL == "" {
		return failure("No photo found for this registrant")
	}

	err = s.photoStore.Delete(ctx, *registrant.PhotoURL)
	if err != nil {
		// The reference is removed regardless; orphaned bytes are
		// preferable to a record pointing at a file we failed to remove.
		slog.Error("failed to delete photo from storage", "error", err, "url", *registrant.PhotoURL)
	}

	err = s.registrantRepo.UpdatePhotoURL(registrantID, nil)
	if err != nil {
		slog.Error("failed to clear photo URL", "error", err, "registrant_id", registrantID)
		return failure("Failed to delete photo")
	}

	s.audit.Record(actorID, "delete_photo", "webinar_registrant", registrantID, *registrant.PhotoURL)
	return Result{Success: true, Message: "Photo deleted successfully"}
}

// UpdateNotes replaces the registrant's notes.
func (s *RegistrantService) UpdateNotes(actorID *string, registrantID, notes string) Result {
	err := s.registrantRepo.UpdateNotes(registrantID, notes)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrantNotFound) {
			return failure("Registrant not found")
		}
		slog.Error("failed to update notes", "error", err, "registrant_id", registrantID)
		return failure("Failed to update notes")
	}

	s.audit.Record(actorID, "update_notes", "webinar_registrant", registrantID, "")
	return Result{Success: true, Message: "Notes updated successfully"}
}
