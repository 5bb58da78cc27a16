// Package user is the authentication stub around the ledger: it maps
// credentials to an opaque identifier and remembers the current session.
// The ledger itself never inspects tokens.
package user

import "time"

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is the current authenticated user plus an opaque token.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  Plan   `json:"plan"`
}

type LoginInput struct {
	Email string `json:"email"`
}
