package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fastopp/fastopp/internal/db"
	"github.com/fastopp/fastopp/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newTestUser(email string) *model.User {
	return &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "x",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user := newTestUser("admin@example.com")
	user.IsStaff = true
	user.IsSuperuser = true
	require.NoError(t, repo.Create(user))

	got, err := repo.ByEmail("admin@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.True(t, got.IsStaff)
	require.True(t, got.IsSuperuser)

	got, err = repo.ByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", got.Email)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(newTestUser("dupe@example.com")))
	err := repo.Create(newTestUser("dupe@example.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.ByID("nope")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.ErrorIs(t, repo.Delete("nope"), ErrUserNotFound)
	require.ErrorIs(t, repo.Update(newTestUser("ghost@example.com")), ErrUserNotFound)
}

func newTestRegistrant(email string) *model.WebinarRegistrant {
	now := time.Now()
	return &model.WebinarRegistrant{
		ID:               uuid.New().String(),
		Name:             "Test Person",
		Email:            email,
		Company:          "Acme",
		WebinarTitle:     "Intro to Demos",
		WebinarDate:      now.Add(24 * time.Hour),
		Status:           model.RegistrantStatusRegistered,
		RegistrationDate: now,
		CreatedAt:        now,
	}
}

func TestRegistrantRepository_CRUD(t *testing.T) {
	repo := NewRegistrantRepository(newTestDB(t))

	reg := newTestRegistrant("person@example.com")
	require.NoError(t, repo.Create(reg))

	got, err := repo.ByID(reg.ID)
	require.NoError(t, err)
	require.Equal(t, "Test Person", got.Name)
	require.Nil(t, got.PhotoURL)

	got.Name = "Renamed Person"
	got.Status = model.RegistrantStatusAttended
	require.NoError(t, repo.Update(got))

	got, err = repo.ByID(reg.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed Person", got.Name)
	require.Equal(t, model.RegistrantStatusAttended, got.Status)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, repo.Delete(reg.ID))
	_, err = repo.ByID(reg.ID)
	require.ErrorIs(t, err, ErrRegistrantNotFound)
}

func TestRegistrantRepository_PhotoURLAndNotes(t *testing.T) {
	repo := NewRegistrantRepository(newTestDB(t))

	reg := newTestRegistrant("person@example.com")
	require.NoError(t, repo.Create(reg))

	url := "/static/uploads/photos/abc.jpg"
	require.NoError(t, repo.UpdatePhotoURL(reg.ID, &url))

	got, err := repo.ByID(reg.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PhotoURL)
	require.Equal(t, url, *got.PhotoURL)

	require.NoError(t, repo.UpdatePhotoURL(reg.ID, nil))
	got, err = repo.ByID(reg.ID)
	require.NoError(t, err)
	require.Nil(t, got.PhotoURL)

	require.NoError(t, repo.UpdateNotes(reg.ID, "VIP guest"))
	got, err = repo.ByID(reg.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	require.Equal(t, "VIP guest", *got.Notes)

	require.ErrorIs(t, repo.UpdateNotes("missing", "x"), ErrRegistrantNotFound)
	require.ErrorIs(t, repo.UpdatePhotoURL("missing", nil), ErrRegistrantNotFound)
}

func TestProductRepository_CRUD(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))

	product := &model.Product{
		ID:        uuid.New().String(),
		Name:      "Widget",
		Price:     9.99,
		Category:  "tools",
		InStock:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(product))

	byCat, err := repo.ByCategory("tools")
	require.NoError(t, err)
	require.Len(t, byCat, 1)

	byCat, err = repo.ByCategory("toys")
	require.NoError(t, err)
	require.Empty(t, byCat)

	product.InStock = false
	require.NoError(t, repo.Update(product))

	got, err := repo.ByID(product.ID)
	require.NoError(t, err)
	require.False(t, got.InStock)

	require.NoError(t, repo.Delete(product.ID))
	require.ErrorIs(t, repo.Delete(product.ID), ErrProductNotFound)
}

func TestAuditLogRepository_RecentOrdering(t *testing.T) {
	repo := NewAuditLogRepository(newTestDB(t))

	for i, action := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(&model.AuditLog{
			ID:        uuid.New().String(),
			Action:    action,
			Entity:    "user",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := repo.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "third", recent[0].Action)
	require.Equal(t, "second", recent[1].Action)
}
