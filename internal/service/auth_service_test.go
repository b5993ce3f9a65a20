package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"goboard/internal/database"
	"goboard/internal/repository"
)

// newTestDB opens a throwaway SQLite database with the full schema applied
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database-backed test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), ttl)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuthService(t, 5*time.Minute)

	user, err := auth.Register("alice", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Register() username = %q, want %q", user.Username, "alice")
	}
	if user.PasswordHash == "hunter2" {
		t.Error("Register() stored the plaintext password")
	}

	session, loggedIn, err := auth.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() user ID = %d, want %d", loggedIn.ID, user.ID)
	}
	if session.ID == "" {
		t.Error("Login() returned empty session token")
	}

	if _, _, err := auth.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	auth := newTestAuthService(t, 5*time.Minute)

	if _, err := auth.Register("alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, errUnknown := auth.Login("nobody", "hunter2")
	_, _, errWrong := auth.Login("alice", "wrong")

	// Both failure modes must be indistinguishable to the caller
	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, wrong password error = %v; both should be ErrInvalidCredentials", errUnknown, errWrong)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth := newTestAuthService(t, 5*time.Minute)

	if _, err := auth.Register("alice", "hunter2"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	if _, err := auth.Register("alice", "different-password"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	auth := newTestAuthService(t, 5*time.Minute)

	if _, err := auth.Register("", "hunter2"); err == nil {
		t.Error("Register() with empty username should fail")
	}
	if _, err := auth.Register("alice", ""); err == nil {
		t.Error("Register() with empty password should fail")
	}
}

func TestValidateSessionLifecycle(t *testing.T) {
	auth := newTestAuthService(t, 5*time.Minute)

	user, err := auth.Register("alice", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	session, _, err := auth.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	resolved, err := auth.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("ValidateSession() user ID = %d, want %d", resolved.ID, user.ID)
	}

	if err := auth.Logout(session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := auth.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ValidateSession() after logout error = %v, want ErrSessionNotFound", err)
	}

	// Logout is idempotent
	if err := auth.Logout(session.ID); err != nil {
		t.Errorf("second Logout() error = %v, want nil", err)
	}
}

func TestValidateSessionUnknownToken(t *testing.T) {
	auth := newTestAuthService(t, 5*time.Minute)

	if _, err := auth.ValidateSession("no-such-token"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ValidateSession() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionExpiryAndRelogin(t *testing.T) {
	auth := newTestAuthService(t, 50*time.Millisecond)

	if _, err := auth.Register("alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	session, _, err := auth.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := auth.ValidateSession(session.ID); err != nil {
		t.Fatalf("ValidateSession() before TTL error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := auth.ValidateSession(session.ID); !errors.Is(err, ErrSessionExpired) && !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ValidateSession() after TTL error = %v, want expired or not found", err)
	}

	// Expired sessions stay expired on every subsequent resolve
	if _, err := auth.ValidateSession(session.ID); err == nil {
		t.Error("ValidateSession() succeeded on an expired token")
	}

	// Re-login issues a fresh, distinct token that resolves again
	fresh, _, err := auth.Login("alice", "hunter2")
	if err != nil {
		t.Fatalf("re-Login() error = %v", err)
	}
	if fresh.ID == session.ID {
		t.Error("re-login reused the old session token")
	}
	if _, err := auth.ValidateSession(fresh.ID); err != nil {
		t.Errorf("ValidateSession() on fresh token error = %v", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	auth := NewAuthService(userRepo, 5*time.Minute)

	user, err := auth.Register("alice", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// One live and one already-expired session
	if _, err := userRepo.CreateSession("live", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if _, err := userRepo.CreateSession("stale", user.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := auth.CleanupExpiredSessions(); err != nil {
		t.Fatalf("CleanupExpiredSessions() error = %v", err)
	}

	if _, err := auth.ValidateSession("live"); err != nil {
		t.Errorf("live session was removed by cleanup: %v", err)
	}
	if _, err := auth.ValidateSession("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session error = %v, want ErrSessionNotFound", err)
	}
}
