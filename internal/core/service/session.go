package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/registration-system/internal/core/domain"
)

// sessionToken issues the JWT backing a non-persistent browser session.
func (s *RegistrationService) sessionToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.FirstName + " " + user.LastName,
		"exp":   s.now().Add(s.cfg.SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// Login authenticates an existing account and returns a session token.
func (s *RegistrationService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessionToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
