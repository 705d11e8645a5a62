package users

import (
	"context"
)

// Store defines the data access contract for user records. All DynamoDB
// specifics live in the concrete implementation -- nothing above this
// interface sees attribute values or expressions.
type Store interface {
	// Get returns the user with the given id, or apperror.NotFound.
	Get(ctx context.Context, id int64) (*User, error)

	// FindByEmail queries the email index and returns zero or more matches.
	// Email uniqueness is enforced only by callers checking this result
	// before a Put; there is no store-level constraint.
	FindByEmail(ctx context.Context, email string) ([]User, error)

	// Put persists a full user record in a single write.
	Put(ctx context.Context, user *User) error

	// Patch applies a partial update to the record with the given id.
	// Only fields present in the patch are touched.
	Patch(ctx context.Context, id int64, patch Patch) error
}
