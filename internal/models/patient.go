package models

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	FirstName string     `json:"firstName" db:"first_name"`
	LastName  string     `json:"lastName" db:"last_name"`
	Email     *string    `json:"email" db:"email"`
	Phone     *string    `json:"phone" db:"phone"`
	BirthDate *time.Time `json:"birthDate" db:"birth_date"`
	Address   *string    `json:"address" db:"address"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName is used as the display name in notification payloads and reports.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
