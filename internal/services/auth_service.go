package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/storage"
	"railbook/internal/utils"
)

// AuthService handles registration and login. It issues the bearer tokens
// that identify callers to the booking endpoints; the reservation core
// trusts the identity as given and never re-derives it.
type AuthService struct {
	Store     storage.Store
	JWTSecret []byte
	TokenTTL  time.Duration
}

func (s AuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return models.User{}, domain.ValidationError{Msg: "username, email, and password are required"}
	}
	if !utils.IsValidEmail(email) {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "invalid email address"}
	}
	if len(password) < utils.MinPasswordLen {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	return s.Store.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
	})
}

// Login verifies credentials and returns a signed token. Unknown user and
// wrong password produce the same error so login does not leak which one it
// was.
func (s AuthService) Login(ctx context.Context, login, password string) (string, models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", models.User{}, domain.ValidationError{Msg: "username and password are required"}
	}

	user, err := s.Store.GetUserByLogin(ctx, login)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, domain.UnauthorizedError{Msg: "invalid username or password"}
		}
		return "", models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.TokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, user, nil
}
