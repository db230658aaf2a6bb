package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fastopp/fastopp/internal/db"
	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/storage"
)

var jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01fake image payload")

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newRegistrantService(t *testing.T) (*RegistrantService, repository.RegistrantRepository, string) {
	t.Helper()

	database := newTestDB(t)
	uploadRoot := t.TempDir()

	registrantRepo := repository.NewRegistrantRepository(database)
	audit := NewAuditService(repository.NewAuditLogRepository(database))
	svc := NewRegistrantService(registrantRepo, storage.NewLocalStorage(uploadRoot), audit)
	return svc, registrantRepo, uploadRoot
}

func seedRegistrant(t *testing.T, svc *RegistrantService) *model.WebinarRegistrant {
	t.Helper()

	registrant := &model.WebinarRegistrant{
		Name:         "Test Person",
		Email:        "person@example.com",
		Company:      "Acme",
		WebinarTitle: "Intro to Demos",
		WebinarDate:  time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, svc.Create(registrant))
	return registrant
}

func TestUploadPhoto(t *testing.T) {
	svc, repo, uploadRoot := newRegistrantService(t)
	registrant := seedRegistrant(t, svc)

	result := svc.UploadPhoto(context.Background(), nil, registrant.ID, jpegBytes, "headshot.jpg")
	require.True(t, result.Success)
	require.NotEmpty(t, result.PhotoURL)
	require.True(t, strings.HasPrefix(result.PhotoURL, "/static/uploads/photos/"))

	got, err := repo.ByID(registrant.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PhotoURL)
	require.Equal(t, result.PhotoURL, *got.PhotoURL)

	name := strings.TrimPrefix(result.PhotoURL, "/static/uploads/")
	onDisk, err := os.ReadFile(filepath.Join(uploadRoot, filepath.FromSlash(name)))
	require.NoError(t, err)
	require.Equal(t, jpegBytes, onDisk)
}

func TestUploadPhoto_ReuploadReplacesReference(t *testing.T) {
	svc, repo, _ := newRegistrantService(t)
	registrant := seedRegistrant(t, svc)

	first := svc.UploadPhoto(context.Background(), nil, registrant.ID, jpegBytes, "one.jpg")
	require.True(t, first.Success)

	second := svc.UploadPhoto(context.Background(), nil, registrant.ID, jpegBytes, "two.jpg")
	require.True(t, second.Success)
	require.NotEqual(t, first.PhotoURL, second.PhotoURL)

	got, err := repo.ByID(registrant.ID)
	require.NoError(t, err)
	require.Equal(t, second.PhotoURL, *got.PhotoURL)
}

func TestUploadPhoto_RegistrantNotFound(t *testing.T) {
	svc, _, _ := newRegistrantService(t)

	result := svc.UploadPhoto(context.Background(), nil, uuid.New().String(), jpegBytes, "x.jpg")
	require.False(t, result.Success)
	require.Equal(t, "Registrant not found", result.Message)
}

func TestUploadPhoto_StorageNotConfigured(t *testing.T) {
	database := newTestDB(t)
	registrantRepo := repository.NewRegistrantRepository(database)
	audit := NewAuditService(repository.NewAuditLogRepository(database))

	store, err := storage.NewS3Storage(context.Background(), storage.S3Config{Region: "us-east-1"})
	require.Error(t, err)
	require.Nil(t, store)

	// A hand-built remote store with no credentials still fails fast.
	svc := NewRegistrantService(registrantRepo, &storage.S3Storage{}, audit)
	registrant := seedRegistrant(t, svc)

	result := svc.UploadPhoto(context.Background(), nil, registrant.ID, jpegBytes, "x.jpg")
	require.False(t, result.Success)
	require.Equal(t, "Storage is not configured", result.Message)

	got, lookupErr := registrantRepo.ByID(registrant.ID)
	require.NoError(t, lookupErr)
	require.Nil(t, got.PhotoURL)
}

func TestDeletePhoto(t *testing.T) {
	svc, repo, uploadRoot := newRegistrantService(t)
	registrant := seedRegistrant(t, svc)

	uploaded := svc.UploadPhoto(context.Background(), nil, registrant.ID, jpegBytes, "headshot.jpg")
	require.True(t, uploaded.Success)

	name := strings.TrimPrefix(uploaded.PhotoURL, "/static/uploads/")
	onDisk := filepath.Join(uploadRoot, filepath.FromSlash(name))
	require.FileExists(t, onDisk)

	result := svc.DeletePhoto(context.Background(), nil, registrant.ID)
	require.True(t, result.Success)
	require.NoFileExists(t, onDisk)

	got, err := repo.ByID(registrant.ID)
	require.NoError(t, err)
	require.Nil(t, got.PhotoURL)
}

func TestDeletePhoto_NoPhoto(t *testing.T) {
	svc, _, _ := newRegistrantService(t)
	registrant := seedRegistrant(t, svc)

	result := svc.DeletePhoto(context.Background(), nil, registrant.ID)
	require.False(t, result.Success)
	require.Equal(t, "No photo found for this registrant", result.Message)
}

func TestDeletePhoto_FileAlreadyGone(t *testing.T) {
	svc, repo, uploadRoot := newRegistrantService(t)
	registrant := seedRegistrant(t, svc)

	uploaded := svc.UploadPhoto(context.Background(), nil, registrant.ID, jpegBytes, "headshot.jpg")
	require.True(t, uploaded.Success)

	name := strings.TrimPrefix(uploaded.PhotoURL, "/static/uploads/")
	require.NoError(t, os.Remove(filepath.Join(uploadRoot, filepath.FromSlash(name))))

	result := svc.DeletePhoto(context.Background(), nil, registrant.ID)
	require.True(t, result.Success)

	got, err := repo.ByID(registrant.ID)
	require.NoError(t, err)
	require.Nil(t, got.PhotoURL)
}

func TestUpdateNotes(t *testing.T) {
	svc, repo, _ := newRegistrantService(t)
	registrant := seedRegistrant(t, svc)

	result := svc.UpdateNotes(nil, registrant.ID, "asked about pricing")
	require.True(t, result.Success)

	got, err := repo.ByID(registrant.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	require.Equal(t, "asked about pricing", *got.Notes)

	result = svc.UpdateNotes(nil, uuid.New().String(), "x")
	require.False(t, result.Success)
	require.Equal(t, "Registrant not found", result.Message)
}

func TestCreate_FillsDefaults(t *testing.T) {
	svc, _, _ := newRegistrantService(t)

	registrant := seedRegistrant(t, svc)
	require.NotEmpty(t, registrant.ID)
	require.Equal(t, model.RegistrantStatusRegistered, registrant.Status)
	require.False(t, registrant.RegistrationDate.IsZero())
	require.False(t, registrant.CreatedAt.IsZero())
}
