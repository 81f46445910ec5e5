package services

import (
	"context"
	"testing"
	"time"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/pkg/apperrors"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
)

func testJWTService() *pkgauth.JWTService {
	return pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret-at-least-32-characters!!",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studify-test",
	})
}

// One bcrypt hash shared across tests; hashing is deliberately slow.
var testPasswordHash = func() string {
	hash, err := pkgauth.HashPassword("correct-horse")
	if err != nil {
		panic(err)
	}
	return hash
}()

func authFixture() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore(
		&models.User{ID: 1, Username: "ada.kaya", Email: "ada.kaya@studify.local",
			Password: testPasswordHash, Role: models.RoleStudent, IsActive: true},
		&models.User{ID: 2, Username: "locked.out", Email: "locked.out@studify.local",
			Password: testPasswordHash, Role: models.RoleStudent, IsActive: false},
	)
	return NewAuthService(users, testJWTService()), users
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		svc, users := authFixture()

		resp, err := svc.Login(ctx, dto.LoginRequest{Username: "ada.kaya", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("token pair incomplete")
		}
		if resp.TokenType != "Bearer" {
			t.Errorf("TokenType = %q, want Bearer", resp.TokenType)
		}
		if resp.User.ID != 1 {
			t.Errorf("User.ID = %d, want 1", resp.User.ID)
		}
		if _, ok := users.refresh[resp.RefreshToken]; !ok {
			t.Error("refresh token not stored")
		}
	})

	t.Run("email works as the identifier", func(t *testing.T) {
		svc, _ := authFixture()

		if _, err := svc.Login(ctx, dto.LoginRequest{
			Username: "ada.kaya@studify.local", Password: "correct-horse",
		}); err != nil {
			t.Errorf("Login() error = %v", err)
		}
	})

	// Unknown account, wrong password and disabled account must be
	// indistinguishable to the caller.
	failures := []struct {
		name     string
		username string
		password string
	}{
		{"unknown account", "nobody", "correct-horse"},
		{"wrong password", "ada.kaya", "wrong-horse"},
		{"disabled account", "locked.out", "correct-horse"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := authFixture()

			_, err := svc.Login(ctx, dto.LoginRequest{Username: tt.username, Password: tt.password})
			if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("token is consumed on use", func(t *testing.T) {
		svc, _ := authFixture()

		first, err := svc.Login(ctx, dto.LoginRequest{Username: "ada.kaya", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		second, err := svc.Refresh(ctx, dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
		if err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
		if second.RefreshToken == first.RefreshToken {
			t.Error("refresh did not rotate the token")
		}

		// Replaying the consumed token must fail.
		if _, err := svc.Refresh(ctx, dto.RefreshTokenRequest{RefreshToken: first.RefreshToken}); !apperrors.Is(err, apperrors.ErrTokenInvalid) {
			t.Errorf("replay Refresh() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		svc, _ := authFixture()

		_, err := svc.Refresh(ctx, dto.RefreshTokenRequest{RefreshToken: "never-issued"})
		if !apperrors.Is(err, apperrors.ErrTokenInvalid) {
			t.Errorf("Refresh() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("disabled account cannot refresh", func(t *testing.T) {
		svc, users := authFixture()
		users.refresh["stale-token"] = 2

		_, err := svc.Refresh(ctx, dto.RefreshTokenRequest{RefreshToken: "stale-token"})
		if !apperrors.Is(err, apperrors.ErrAccountDisabled) {
			t.Errorf("Refresh() error = %v, want ErrAccountDisabled", err)
		}
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("admin registers an account", func(t *testing.T) {
		svc, users := authFixture()

		resp, err := svc.Register(ctx, adminPrincipal, dto.RegisterRequest{
			Username: "new.admin", Email: "new.admin@studify.local",
			Password: "long-enough-pass", Role: "ADMIN",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.Role != models.RoleAdmin {
			t.Errorf("Role = %s, want ADMIN", resp.Role)
		}
		stored, err := users.GetByID(ctx, resp.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if stored.Password == "long-enough-pass" {
			t.Error("password stored in clear")
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		svc, _ := authFixture()

		_, err := svc.Register(ctx, adminPrincipal, dto.RegisterRequest{
			Username: "ada.kaya", Email: "other@studify.local",
			Password: "long-enough-pass", Role: "STUDENT",
		})
		if !apperrors.Is(err, apperrors.ErrUsernameExists) {
			t.Errorf("Register() error = %v, want ErrUsernameExists", err)
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc, _ := authFixture()

		_, err := svc.Register(ctx, teacherPrincipal(200), dto.RegisterRequest{
			Username: "sneaky", Email: "sneaky@studify.local",
			Password: "long-enough-pass", Role: "ADMIN",
		})
		if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("Register() error = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password rejected", func(t *testing.T) {
		svc, _ := authFixture()

		err := svc.ChangePassword(ctx, studentPrincipal(1), dto.ChangePasswordRequest{
			CurrentPassword: "wrong-horse", NewPassword: "brand-new-pass",
		})
		if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("ChangePassword() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("rotation revokes refresh tokens", func(t *testing.T) {
		svc, users := authFixture()
		users.refresh["outstanding"] = 1

		err := svc.ChangePassword(ctx, studentPrincipal(1), dto.ChangePasswordRequest{
			CurrentPassword: "correct-horse", NewPassword: "brand-new-pass",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if len(users.refresh) != 0 {
			t.Error("refresh tokens not revoked")
		}
		if users.users[1].Password == testPasswordHash {
			t.Error("password hash unchanged")
		}
	})
}
