package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"railbook/internal/domain"
	"railbook/internal/storage/memory"
)

func newAuthService() AuthService {
	return AuthService{
		Store:     memory.New(),
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "user", user.Role)

	token, loggedIn, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, float64(user.ID), claims["user_id"])
	require.Equal(t, "alice", claims["username"])
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	cases := []struct {
		name                      string
		username, email, password string
	}{
		{"missing fields", "", "", ""},
		{"bad email", "bob", "not-an-email", "secret123"},
		{"short password", "bob", "bob@example.com", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			require.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestRegister_DuplicateRejected(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "secret123")
	require.True(t, domain.IsValidation(err), "got %v", err)
}

// Unknown user and wrong password come back identical so the login endpoint
// does not reveal which half was wrong.
func TestLogin_BadCredentials(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, _, errWrongPass := svc.Login(ctx, "alice", "nope")
	require.True(t, domain.IsUnauthorized(errWrongPass), "got %v", errWrongPass)

	_, _, errNoUser := svc.Login(ctx, "mallory", "nope")
	require.True(t, domain.IsUnauthorized(errNoUser), "got %v", errNoUser)

	require.Equal(t, errWrongPass.Error(), errNoUser.Error())
}
