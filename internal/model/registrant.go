package model

import (
	"time"
)

const (
	RegistrantStatusRegistered = "registered"
	RegistrantStatusAttended   = "attended"
	RegistrantStatusNoShow     = "no_show"
	RegistrantStatusCancelled  = "cancelled"
)

type WebinarRegistrant struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Company          string    `db:"company" json:"company"`
	WebinarTitle     string    `db:"webinar_title" json:"webinar_title"`
	WebinarDate      time.Time `db:"webinar_date" json:"webinar_date"`
	Status           string    `db:"status" json:"status"`
	GroupName        *string   `db:"group_name" json:"group,omitempty"`
	PhotoURL         *string   `db:"photo_url" json:"photo_url,omitempty"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
