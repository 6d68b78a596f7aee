package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a catalog entry with a finite number of units available for checkout.
// Quantity is owned by the inventory store and never assigned directly.
type Item struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	ShelfLocation string    `json:"shelfLocation"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Role is the authorization role of a borrower account.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}

// Borrower is a user account as seen by the loan engine. It is read-only here;
// the identity collaborator owns it.
type Borrower struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}
