package model

import "github.com/google/uuid"

// TokenManager issues and validates bearer session tokens. Tokens are
// stateless: there is no server-side session record, expiry is encoded in
// the token itself.
type TokenManager interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}
