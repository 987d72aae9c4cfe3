package ports

import "context"

// User is the read model of the user lookup collaborator. Account
// management lives in a separate system; the core only needs identity,
// notification address, and role.
type User struct {
	ID    int
	Email string
	Role  string
}

// IsAdmin reports whether the user sees shipments across all owners.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserRepository looks up users by id. Returns errs.ErrObjectNotFound when
// absent.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*User, error)
}
