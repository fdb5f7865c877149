package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Password     []byte    `db:"password" json:"-"`
	RegisteredAt time.Time `db:"registered_at,omitempty" json:"registered_at,omitempty"`
	LastLogin    time.Time `db:"last_login,omitempty" json:"last_login,omitempty"`
}
