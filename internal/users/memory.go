package users

import (
	"context"
	"sync"

	"github.com/hywep/alerts/internal/apperror"
)

// MemoryStore is an in-memory Store implementation with the same contract
// as the DynamoDB adapter, including the lack of an email uniqueness
// constraint. It backs the auth and settings test suites and local
// development without AWS credentials.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[int64]User

	// PutCount and PatchCount track write calls so tests can assert that
	// rejected inputs never reach the store.
	PutCount   int
	PatchCount int

	// FailWrites, when set, makes Put and Patch return the given error to
	// simulate an unreachable store.
	FailWrites error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]User)}
}

// Get returns a copy of the stored user or apperror.NotFound.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.items[id]
	if !ok {
		return nil, apperror.NewNotFound("사용자를 찾을 수 없습니다.")
	}
	return &u, nil
}

// FindByEmail scans for matching emails, mirroring the GSI query.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []User
	for _, u := range s.items {
		if u.Email == email {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// Put stores the full record, overwriting any existing item with the same id.
func (s *MemoryStore) Put(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.PutCount++
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.items[user.ID] = *user
	return nil
}

// Patch applies present fields to the stored record.
func (s *MemoryStore) Patch(ctx context.Context, id int64, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.PatchCount++
	if s.FailWrites != nil {
		return s.FailWrites
	}

	u, ok := s.items[id]
	if !ok {
		return apperror.NewNotFound("사용자를 찾을 수 없습니다.")
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if len(patch.Majors) > 0 {
		u.Majors = patch.Majors
	}
	if patch.Grade != nil {
		u.Grade = *patch.Grade
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.Tags != nil {
		u.Tags = patch.Tags
	}

	s.items[id] = u
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
