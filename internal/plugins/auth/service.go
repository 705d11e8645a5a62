package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/notify"
	"github.com/hywep/alerts/internal/users"
)

// AuthService defines the business logic contract for registration and
// login. Handlers call these methods -- they never touch the store directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (token string, err error)
	Login(ctx context.Context, input LoginInput) (token string, err error)
}

// authService implements AuthService over the user store, the token
// issuer, and the notification sink.
type authService struct {
	store    users.Store
	issuer   *TokenIssuer
	notifier notify.Notifier
	stage    string
}

// NewAuthService creates a new auth service with the given dependencies.
// Wire notify.Discard outside prod; the service always calls the sink.
func NewAuthService(store users.Store, issuer *TokenIssuer, notifier notify.Notifier, stage string) AuthService {
	return &authService{
		store:    store,
		issuer:   issuer,
		notifier: notifier,
		stage:    stage,
	}
}

// Register creates a new subscriber. The duplicate-email check is a query
// followed by a separate write: a concurrent registration with the same
// email can slip between the two. Accepted gap -- the store has no
// uniqueness constraint to lean on.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, error) {
	matched, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if len(matched) > 0 {
		return "", apperror.NewConflict("이미 존재하는 이메일입니다.")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &users.User{
		ID:        users.NewID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		Majors:    input.Majors,
		Grade:     input.Grade,
		Tags:      input.Tags,
		IsActive:  true,
		CreatedAt: users.Today(),
	}

	// The sole mutating step. Everything before this leaves no state behind.
	if err := s.store.Put(ctx, user); err != nil {
		return "", apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	token, err := s.issuer.Issue(user.ID, user.Name, user.Email)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing session token: %w", err))
	}

	// Fire-and-forget: delivery failure must never fail the registration,
	// and a slow webhook must not hold the response. Detached from the
	// request context so cancellation doesn't kill the send mid-flight.
	go s.notifyRegistration(user)

	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, nil
}

// Login authenticates a subscriber by email and password.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	matched, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}
	if len(matched) == 0 {
		return "", apperror.NewUnauthorized("사용자를 찾을 수 없습니다.")
	}

	user := matched[0]

	if !VerifyPassword(input.Password, user.Password) {
		return "", apperror.NewUnauthorized("비밀번호가 일치하지 않습니다.")
	}

	token, err := s.issuer.Issue(user.ID, user.Name, user.Email)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing session token: %w", err))
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, nil
}

// notifyRegistration posts the registration summary to the sink and logs
// any failure at warn. Runs on its own goroutine with a background context.
func (s *authService) notifyRegistration(user *users.User) {
	text := fmt.Sprintf("%s 회원 가입:\n- 이름: %s\n- 이메일: %s\n- 학과: %s\n- 학년: %d",
		s.stage, user.Name, user.Email, strings.Join(user.Majors, ","), user.Grade)

	if err := s.notifier.Send(context.Background(), text); err != nil {
		slog.Warn("registration notification failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
