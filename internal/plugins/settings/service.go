package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/plugins/auth"
	"github.com/hywep/alerts/internal/users"
)

// SettingsService defines the business logic contract for the settings page.
type SettingsService interface {
	Get(ctx context.Context, id int64) (*users.User, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
}

type settingsService struct {
	store users.Store
}

// NewSettingsService creates a new settings service over the user store.
func NewSettingsService(store users.Store) SettingsService {
	return &settingsService{store: store}
}

// Get loads the subscriber's current profile for prefilling the form.
func (s *settingsService) Get(ctx context.Context, id int64) (*users.User, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial profile update. Only fields the subscriber
// actually filled in make it into the patch; an empty password keeps the
// stored hash. The session token is not reissued, so a changed name or
// email shows up in the token only after the next sign-in.
func (s *settingsService) Update(ctx context.Context, id int64, input UpdateInput) error {
	patch := users.Patch{
		Name:     input.Name,
		Email:    input.Email,
		Majors:   input.Majors,
		Grade:    &input.Grade,
		IsActive: &input.IsActive,
		Tags:     input.Tags,
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
		}
		patch.Password = &hash
	}

	if err := s.store.Patch(ctx, id, patch); err != nil {
		return apperror.NewInternal(fmt.Errorf("updating user %d: %w", id, err))
	}

	slog.Info("user settings updated",
		slog.Int64("user_id", id),
		slog.Bool("is_active", input.IsActive),
	)

	return nil
}
