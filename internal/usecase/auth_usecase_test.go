package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"patients-management/config"
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/internal/service"
	"patients-management/pkg/jwt"

	"github.com/google/uuid"
)

type authFixture struct {
	users   *fakeUserRepo
	tokens  *fakeTokenStore
	audit   *fakeAuditLogRepo
	jwt     *jwt.JWTService
	usecase AuthUsecase
}

func newAuthFixture() *authFixture {
	log := quietLogger()
	f := &authFixture{
		users:  &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		tokens: &fakeTokenStore{},
		audit:  &fakeAuditLogRepo{},
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		}),
	}
	f.usecase = NewAuthUsecase(fakeTransactor{}, log, f.users, &fakeDoctorRepo{}, f.jwt, f.tokens, service.NewAuditService(log, f.audit))
	return f
}

func (f *authFixture) register(t *testing.T, username string) *dto.TokenResponse {
	t.Helper()
	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username:  username,
		Password:  "secret",
		Password2: "secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return resp
}

func (f *authFixture) claims(t *testing.T, token string) *jwt.Claims {
	t.Helper()
	claims, err := f.jwt.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	return claims
}

func (f *authFixture) isLive(claims *jwt.Claims) bool {
	live, _ := f.tokens.Exists(context.Background(), claims.TokenType, claims.UserID, claims.TokenID)
	return live
}

func TestRegisterCreatesReceptionAccount(t *testing.T) {
	f := newAuthFixture()
	resp := f.register(t, "front-desk")

	if resp.User == nil || resp.User.Role != entity.RoleReception.String() {
		t.Fatalf("user = %+v, want reception role", resp.User)
	}
	if !f.isLive(f.claims(t, resp.AccessToken)) || !f.isLive(f.claims(t, resp.RefreshToken)) {
		t.Error("issued tokens are not stored")
	}
	for _, u := range f.users.users {
		if u.Password == "secret" {
			t.Error("password stored in clear text")
		}
	}

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{Username: "front-desk", Password: "other", Password2: "other"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Errorf("duplicate Register err = %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	inactive := false

	tests := []struct {
		name     string
		password string
		disable  bool
		wantErr  error
	}{
		{name: "valid credentials", password: "secret"},
		{name: "wrong password", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "disabled account", password: "secret", disable: true, wantErr: ErrUserInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			f.register(t, "front-desk")
			if tt.disable {
				for _, u := range f.users.users {
					u.IsActive = &inactive
				}
			}

			resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "front-desk", Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !f.isLive(f.claims(t, resp.RefreshToken)) {
				t.Error("refresh token from login is not stored")
			}
		})
	}

	f := newAuthFixture()
	if _, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "secret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	issued := f.register(t, "front-desk")
	oldRefresh := f.claims(t, issued.RefreshToken)

	rotated, err := f.usecase.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: issued.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	newRefresh := f.claims(t, rotated.RefreshToken)

	if f.isLive(oldRefresh) {
		t.Error("presented refresh token is still live after rotation")
	}
	if !f.isLive(newRefresh) {
		t.Error("rotated refresh token was not stored")
	}
	if newRefresh.TokenID == oldRefresh.TokenID {
		t.Error("rotation reused the refresh token id")
	}

	if _, err := f.usecase.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: issued.RefreshToken}); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("replayed refresh err = %v, want ErrTokenRevoked", err)
	}
	if _, err := f.usecase.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token as refresh err = %v, want ErrInvalidToken", err)
	}
	if _, err := f.usecase.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "garbage"}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("malformed refresh err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenRejectsDisabledUser(t *testing.T) {
	f := newAuthFixture()
	issued := f.register(t, "front-desk")
	inactive := false
	for _, u := range f.users.users {
		u.IsActive = &inactive
	}

	if _, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: issued.RefreshToken}); !errors.Is(err, ErrUserInactive) {
		t.Errorf("err = %v, want ErrUserInactive", err)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	tests := []struct {
		name           string
		sendRefresh    bool
		wantRefreshOut bool
	}{
		{name: "access token only", sendRefresh: false, wantRefreshOut: false},
		{name: "access and refresh token", sendRefresh: true, wantRefreshOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			ctx := context.Background()
			issued := f.register(t, "front-desk")
			access := f.claims(t, issued.AccessToken)
			refresh := f.claims(t, issued.RefreshToken)

			req := &dto.LogoutRequest{}
			if tt.sendRefresh {
				req.RefreshToken = issued.RefreshToken
			}
			if err := f.usecase.Logout(ctx, access.UserID, access.TokenID, req); err != nil {
				t.Fatalf("Logout: %v", err)
			}

			if f.isLive(access) {
				t.Error("access token is still live after logout")
			}
			if got := !f.isLive(refresh); got != tt.wantRefreshOut {
				t.Errorf("refresh revoked = %v, want %v", got, tt.wantRefreshOut)
			}
			last := f.audit.logs[len(f.audit.logs)-1]
			if last.Action != entity.AuditActionUserLogout {
				t.Errorf("last audit action = %s, want %s", last.Action, entity.AuditActionUserLogout)
			}
		})
	}
}

func TestLogoutIgnoresRefreshTokenOfAnotherUser(t *testing.T) {
	f := newAuthFixture()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	aliceAccess := f.claims(t, alice.AccessToken)
	bobRefresh := f.claims(t, bob.RefreshToken)

	if err := f.usecase.Logout(context.Background(), aliceAccess.UserID, aliceAccess.TokenID, &dto.LogoutRequest{RefreshToken: bob.RefreshToken}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !f.isLive(bobRefresh) {
		t.Error("logout revoked a refresh token belonging to another user")
	}
}
