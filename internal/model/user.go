package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser" json:"is_superuser"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CanManageWebinars reports whether the user may upload photos and edit
// registrant notes. Staff and superusers both qualify.
func (u *User) CanManageWebinars() bool {
	return u.IsStaff || u.IsSuperuser
}
