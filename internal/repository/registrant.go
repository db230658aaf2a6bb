package repository

import (
	"database/sql"
	"errors"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrRegistrantNotFound = errors.New("registrant not found")
)

type RegistrantRepository interface {
	Create(registrant *model.WebinarRegistrant) error
	ByID(id string) (*model.WebinarRegistrant, error)
	All() ([]*model.WebinarRegistrant, error)
	Update(registrant *model.WebinarRegistrant) error
	UpdatePhotoURL(id string, photoURL *string) error
	UpdateNotes(id string, notes string) error
	Delete(id string) error
}

type registrantRepository struct {
	db *sqlx.DB
}

func NewRegistrantRepository(db *sqlx.DB) RegistrantRepository {
	return &registrantRepository{db: db}
}

func (r *registrantRepository) Create(registrant *model.WebinarRegistrant) error {
	query := `INSERT INTO webinar_registrants (id, name, email, company, webinar_title, webinar_date, status, group_name, photo_url, notes, registration_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		registrant.ID,
		registrant.Name,
		registrant.Email,
		registrant.Company,
		registrant.WebinarTitle,
		registrant.WebinarDate,
		registrant.Status,
		registrant.GroupName,
		registrant.PhotoURL,
		registrant.Notes,
		registrant.RegistrationDate,
		registrant.CreatedAt,
	)

	return err
}

func (r *registrantRepository) ByID(id string) (*model.WebinarRegistrant, error) {
	registrant := &model.WebinarRegistrant{}
	query := `SELECT * FROM webinar_registrants WHERE id = $1`

	err := r.db.Get(registrant, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRegistrantNotFound
	}

	return registrant, err
}

func (r *registrantRepository) All() ([]*model.WebinarRegistrant, error) {
	var registrants []*model.WebinarRegistrant
	query := `SELECT * FROM webinar_registrants ORDER BY registration_date`

	err := r.db.Select(&registrants, query)
	if err != nil {
		return nil, err
	}

	return registrants, nil
}

func (r *registrantRepository) Update(registrant *model.WebinarRegistrant) error {
	query := `UPDATE webinar_registrants SET name = $1, email = $2, company = $3, webinar_title = $4, webinar_date = $5, status = $6, group_name = $7 WHERE id = $8`

	result, err := r.db.Exec(query,
		registrant.Name,
		registrant.Email,
		registrant.Company,
		registrant.WebinarTitle,
		registrant.WebinarDate,
		registrant.Status,
		registrant.GroupName,
		registrant.ID,
	)
	if err != nil {
		return err
	}

	return requireRow(result, ErrRegistrantNotFound)
}

func (r *registrantRepository) UpdatePhotoURL(id string, photoURL *string) error {
	query := `UPDATE webinar_registrants SET photo_url = $1 WHERE id = $2`

	result, err := r.db.Exec(query, photoURL, id)
	if err != nil {
		return err
	}

	return requireRow(result, ErrRegistrantNotFound)
}

func (r *registrantRepository) UpdateNotes(id string, notes string) error {
	query := `UPDATE webinar_registrants SET notes = $1 WHERE id = $2`

	result, err := r.db.Exec(query, notes, id)
	if err != nil {
		return err
	}

	return requireRow(result, ErrRegistrantNotFound)
}

func (r *registrantRepository) Delete(id string) error {
	query := `DELETE FROM webinar_registrants WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	return requireRow(result, ErrRegistrantNotFound)
}

// requireRow converts a zero-row update or delete into notFound.
func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
