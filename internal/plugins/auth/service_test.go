package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hywep/alerts/internal/apperror"
	"github.com/hywep/alerts/internal/notify"
	"github.com/hywep/alerts/internal/users"
)

// recordingNotifier captures sent messages on a channel so tests can wait
// for the fire-and-forget goroutine.
type recordingNotifier struct {
	sent chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan string, 1)}
}

func (n *recordingNotifier) Send(ctx context.Context, text string) error {
	n.sent <- text
	return nil
}

func newTestService(store users.Store, notifier notify.Notifier) AuthService {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(store, issuer, notifier, "dev")
}

// --- Test Helpers ---

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	store := users.NewMemoryStore()
	notifier := newRecordingNotifier()
	svc := newTestService(store, notifier)

	token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Kim",
		Email:    "a@b.com",
		Password: "pass1234",
		Majors:   []string{"컴퓨터공학"},
		Grade:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The issued token carries the new identity.
	issuer := NewTokenIssuer("test-secret", time.Hour)
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if claims.Name != "Kim" || claims.Email != "a@b.com" {
		t.Errorf("token claims = %s/%s, want Kim/a@b.com", claims.Name, claims.Email)
	}

	// The stored record matches the input, with defaults applied.
	stored, err := store.Get(context.Background(), claims.UserID)
	if err != nil {
		t.Fatalf("stored user should exist: %v", err)
	}
	if !stored.IsActive {
		t.Error("new subscriptions start active")
	}
	if stored.Password == "pass1234" {
		t.Error("password must be stored hashed")
	}
	if !VerifyPassword("pass1234", stored.Password) {
		t.Error("stored hash should verify against the original password")
	}
	if stored.CreatedAt != users.Today() {
		t.Errorf("expected created_at %s, got %s", users.Today(), stored.CreatedAt)
	}

	// The registration notification fires with the profile summary.
	select {
	case text := <-notifier.sent:
		if !strings.Contains(text, "a@b.com") || !strings.Contains(text, "컴퓨터공학") {
			t.Errorf("notification missing profile details: %q", text)
		}
	case <-time.After(time.Second):
		t.Error("expected a registration notification")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := users.NewMemoryStore()
	svc := newTestService(store, notify.Discard{})

	first := RegisterInput{
		Name:     "Kim",
		Email:    "a@b.com",
		Password: "pass1234",
		Majors:   []string{"컴퓨터공학"},
		Grade:    3,
	}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := first
	second.Name = "Lee"
	_, err := svc.Register(context.Background(), second)
	assertAppError(t, err, http.StatusConflict)

	// The first record is untouched and no second record was written.
	if store.Len() != 1 {
		t.Errorf("expected 1 stored record, got %d", store.Len())
	}
	matched, _ := store.FindByEmail(context.Background(), "a@b.com")
	if len(matched) != 1 || matched[0].Name != "Kim" {
		t.Error("original record should be unchanged after a rejected duplicate")
	}
	if store.PutCount != 1 {
		t.Errorf("expected exactly 1 store write, got %d", store.PutCount)
	}
}

func TestRegister_StoreUnavailable(t *testing.T) {
	store := users.NewMemoryStore()
	store.FailWrites = errors.New("connection refused")
	svc := newTestService(store, notify.Discard{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Kim",
		Email:    "a@b.com",
		Password: "pass1234",
		Majors:   []string{"컴퓨터공학"},
		Grade:    3,
	})
	assertAppError(t, err, http.StatusInternalServerError)

	// The generic message must not leak the underlying failure.
	var appErr *apperror.AppError
	errors.As(err, &appErr)
	if strings.Contains(appErr.Message, "connection refused") {
		t.Error("internal error detail leaked into the user-facing message")
	}
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	store := users.NewMemoryStore()
	svc := newTestService(store, notify.Discard{})

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Kim",
		Email:    "a@b.com",
		Password: "pass1234",
		Majors:   []string{"컴퓨터공학"},
		Grade:    3,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "pass1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	issuer := NewTokenIssuer("test-secret", time.Hour)
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("expected email a@b.com in claims, got %s", claims.Email)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(users.NewMemoryStore(), notify.Discard{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@b.com", Password: "pass1234"})
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := users.NewMemoryStore()
	svc := newTestService(store, notify.Discard{})

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Kim",
		Email:    "a@b.com",
		Password: "pass1234",
		Majors:   []string{"컴퓨터공학"},
		Grade:    3,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong"})
	assertAppError(t, err, http.StatusUnauthorized)
}
