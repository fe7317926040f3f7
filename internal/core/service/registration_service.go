package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/registration-system/internal/core/domain"
	"github.com/memberhub/registration-system/internal/core/ports"
)

// dateLayout is the wire format for the date-of-birth form field.
const dateLayout = "2006-01-02"

const (
	defaultMinimumAge      = 27
	defaultConfirmationTTL = 24 * time.Hour
	defaultSessionTTL      = 24 * time.Hour
)

// Config carries the registration policy. Values that in the source system
// lived on ambient identity options are passed in explicitly here.
type Config struct {
	JWTSecret string
	// BaseURL is the externally reachable origin used to build the
	// confirmation callback link, e.g. https://accounts.example.com.
	BaseURL    string
	MinimumAge int
	// RequireConfirmedAccount forces newly registered users through email
	// confirmation before any session is established.
	RequireConfirmedAccount bool
	ConfirmationTTL         time.Duration
	SessionTTL              time.Duration
}

// RegistrationService implements member sign-up, email confirmation and login.
type RegistrationService struct {
	repo          ports.UserRepository
	mailer        ports.Mailer
	confirmations ports.ConfirmationStore
	validate      *validator.Validate
	cfg           Config
	logger        zerolog.Logger
	now           func() time.Time
}

func NewRegistrationService(repo ports.UserRepository, mailer ports.Mailer, confirmations ports.ConfirmationStore, cfg Config, logger zerolog.Logger) *RegistrationService {
	if cfg.MinimumAge <= 0 {
		cfg.MinimumAge = defaultMinimumAge
	}
	if cfg.ConfirmationTTL <= 0 {
		cfg.ConfirmationTTL = defaultConfirmationTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	return &RegistrationService{
		repo:          repo,
		mailer:        mailer,
		confirmations: confirmations,
		validate:      validator.New(),
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// Register runs the full sign-up sequence: validate the submission, create
// the account, attach the profile picture, issue a confirmation email, and
// decide between immediate sign-in and pending-confirmation.
//
// Validation failures abort before any store mutation and are returned as
// domain.ValidationErrors.
func (s *RegistrationService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	if errs := s.validateInput(input); len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dob, _ := time.Parse(dateLayout, input.DateOfBirth) // already validated

	now := s.now().UTC()
	user := &domain.User{
		Email:           strings.TrimSpace(input.Email),
		PasswordHash:    string(hash),
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		FatherFirstName: strings.TrimSpace(input.FatherFirstName),
		FatherLastName:  strings.TrimSpace(input.FatherLastName),
		DateOfBirth:     dob,
		MobileNumber:    input.MobileNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			// Store-level rejections come back as form-level errors so the
			// form is re-rendered rather than failing the request outright.
			return nil, domain.ValidationErrors{{Message: err.Error()}}
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user created a new account with password")

	// The picture write is a deliberate, separate persistence step; losing
	// it does not roll back the account.
	created.ProfilePicture = input.ProfilePicture
	created.ProfilePictureType = input.ProfilePictureType
	if err := s.repo.SaveProfilePicture(ctx, created.ID, input.ProfilePicture, input.ProfilePictureType); err != nil {
		s.logger.Error().Err(err).Str("user_id", created.ID).Msg("failed to save profile picture")
	}

	code, err := s.issueConfirmation(ctx, created)
	if err != nil {
		return nil, err
	}
	if err := s.sendConfirmationEmail(ctx, created, code, input.ReturnURL); err != nil {
		s.logger.Error().Err(err).Str("user_id", created.ID).Msg("failed to send confirmation email")
		return nil, fmt.Errorf("send confirmation email: %w", err)
	}

	result := &ports.RegisterResult{User: created, ReturnURL: input.ReturnURL}
	if s.cfg.RequireConfirmedAccount {
		result.PendingConfirmation = true
		return result, nil
	}

	token, err := s.sessionToken(created)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	result.SessionToken = token
	return result, nil
}

// validateInput runs the registration rules in a fixed order, accumulating
// every failure so the form can surface them all at once.
func (s *RegistrationService) validateInput(in ports.RegisterInput) domain.ValidationErrors {
	var errs domain.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	required := []struct{ field, value string }{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"fatherFirstName", in.FatherFirstName},
		{"fatherLastName", in.FatherLastName},
		{"email", in.Email},
		{"password", in.Password},
		{"dateOfBirth", in.DateOfBirth},
		{"mobileNumber", in.MobileNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			add(f.field, "is required")
		}
	}

	if in.Email != "" {
		if err := s.validate.Var(strings.TrimSpace(in.Email), "email"); err != nil {
			add("email", "must be a valid email address")
		}
	}
	if n := len(in.Password); in.Password != "" && (n < 6 || n > 100) {
		add("password", "must be between 6 and 100 characters")
	}
	if in.ConfirmPassword != in.Password {
		add("confirmPassword", "the password and confirmation password do not match")
	}
	if in.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, in.DateOfBirth)
		if err != nil {
			add("dateOfBirth", "invalid date format")
		} else if err := domain.MinimumAge(dob, s.cfg.MinimumAge, s.now()); err != nil {
			add("dateOfBirth", fmt.Sprintf("you must be at least %d years old", s.cfg.MinimumAge))
		}
	}
	if in.MobileNumber != "" && !domain.ValidMobileNumber(in.MobileNumber) {
		add("mobileNumber", "mobile number must be 10 digits")
	}
	if len(in.ProfilePicture) == 0 {
		add("profilePicture", "profile picture is required")
	}

	return errs
}
