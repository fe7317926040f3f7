package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"github.com/memberhub/registration-system/internal/core/domain"
)

// confirmPurpose distinguishes confirmation tokens from session tokens signed
// with the same secret.
const confirmPurpose = "email_confirm"

// issueConfirmation creates a time-bounded confirmation token for the user,
// URL-safe-encodes it, and records the code for single-use redemption.
func (s *RegistrationService) issueConfirmation(ctx context.Context, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"purpose": confirmPurpose,
		"exp":     s.now().Add(s.cfg.ConfirmationTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign confirmation token: %w", err)
	}

	code := base64.RawURLEncoding.EncodeToString([]byte(token))
	if err := s.confirmations.Put(ctx, user.ID, code, s.cfg.ConfirmationTTL); err != nil {
		return "", fmt.Errorf("store confirmation code: %w", err)
	}
	return code, nil
}

func (s *RegistrationService) sendConfirmationEmail(ctx context.Context, user *domain.User, code, returnURL string) error {
	q := url.Values{}
	q.Set("area", "identity")
	q.Set("userId", user.ID)
	q.Set("code", code)
	q.Set("returnUrl", returnURL)
	callback := fmt.Sprintf("%s/account/confirm-email?%s", s.cfg.BaseURL, q.Encode())

	body := fmt.Sprintf("Please confirm your account by <a href='%s'>clicking here</a>.", html.EscapeString(callback))
	return s.mailer.Send(ctx, user.Email, "Confirm your email", body)
}

// ConfirmEmail redeems a confirmation code. The code must decode to a valid,
// unexpired token for this user and must not have been used before.
func (s *RegistrationService) ConfirmEmail(ctx context.Context, userID, code string) error {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return domain.ErrInvalidConfirmation
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(string(raw), claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidConfirmation
	}
	if claims["purpose"] != confirmPurpose || claims["sub"] != userID {
		return domain.ErrInvalidConfirmation
	}

	ok, err := s.confirmations.Consume(ctx, userID, code)
	if err != nil {
		return fmt.Errorf("consume confirmation code: %w", err)
	}
	if !ok {
		return domain.ErrInvalidConfirmation
	}

	if err := s.repo.ConfirmEmail(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("email confirmed")
	return nil
}
