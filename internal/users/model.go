// Package users holds the user domain model and the store contract for the
// notification-registration portal. The backing store is a single DynamoDB
// table keyed by numeric id with a GSI on email; an in-memory implementation
// of the same contract backs the test suites of the auth and settings
// plugins.
package users

import (
	"math/rand/v2"
	"time"
)

// User represents a registered subscriber. This is the domain model used
// throughout the application; the dynamodbav tags mirror the attribute
// names in the live table.
type User struct {
	ID        int64    `dynamodbav:"id" json:"id"`
	Name      string   `dynamodbav:"name" json:"name"`
	Email     string   `dynamodbav:"email" json:"email"`
	Password  string   `dynamodbav:"password" json:"-"` // bcrypt hash, never plaintext.
	Majors    []string `dynamodbav:"majors" json:"majors"`
	Grade     int      `dynamodbav:"grade" json:"grade"`
	Tags      []string `dynamodbav:"tags,omitempty" json:"tags,omitempty"`
	IsActive  bool     `dynamodbav:"isActive" json:"isActive"`
	CreatedAt string   `dynamodbav:"created_at" json:"created_at"` // day granularity, immutable
}

// Patch is a partial update of a user record. Nil/empty fields are absent
// from the generated SET expression, so omitted fields retain their prior
// values. IsActive carries a pointer because false is a meaningful value.
type Patch struct {
	Name     *string
	Email    *string
	Password *string // already hashed by the caller
	Majors   []string
	Grade    *int
	IsActive *bool
	Tags     []string // non-nil replaces the stored list, including with empty
}

// IsEmpty reports whether the patch would generate no SET clause.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil &&
		len(p.Majors) == 0 && p.Grade == nil && p.IsActive == nil && p.Tags == nil
}

// NewID generates a record id as current unix milliseconds minus a small
// random offset, matching the ids already in the table. There is no
// collision check: two registrations within the same millisecond window can
// in theory produce the same id. Known gap, kept as-is.
func NewID() int64 {
	return time.Now().UnixMilli() - rand.Int64N(1000)
}

// Today returns the day-granularity creation stamp format used by created_at.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}
