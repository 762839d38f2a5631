package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	// Require returns the identity of the logged in user, or ErrNotAuthenticated.
	Require() (domain.Identity, error)
}

type AccountService struct {
	auth     port.AuthService
	sessions *SessionStore
	validate *validator.Validate
}

func NewAccountService(auth port.AuthService, sessions *SessionStore) *AccountService {
	return &AccountService{
		auth:     auth,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *AccountService) SignUp(ctx context.Context, form domain.SignupForm) error {
	if err := a.check(form); err != nil {
		return err
	}

	status, err := a.auth.SignUp(ctx, form)
	if err != nil {
		log.Error().Err(err).Str("email", form.Email).Msg("signup failed")
		return fmt.Errorf("error creating account: %w", err)
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return &domain.RemoteError{Status: status, Message: "Error in creating account"}
	}

	log.Info().Str("email", form.Email).Msg("account created")

	return nil
}

// LogIn authenticates and persists the returned session record.
func (a *AccountService) LogIn(ctx context.Context, form domain.LoginForm) (domain.Identity, error) {
	if err := a.check(form); err != nil {
		return domain.Identity{}, err
	}

	body, err := a.auth.LogIn(ctx, form)
	if err != nil {
		log.Error().Err(err).Str("email", form.Email).Msg("login failed")
		return domain.Identity{}, fmt.Errorf("error logging in: %w", err)
	}

	if err := a.sessions.Save(body); err != nil {
		return domain.Identity{}, fmt.Errorf("error saving session: %w", err)
	}

	identity := a.sessions.Identity()
	log.Info().Str("userId", identity.UserID).Msg("logged in")

	return identity, nil
}

func (a *AccountService) LogOut() error {
	if err := a.sessions.Clear(); err != nil {
		return fmt.Errorf("error removing session: %w", err)
	}

	log.Info().Msg("logged out")

	return nil
}

func (a *AccountService) Require() (domain.Identity, error) {
	if !a.sessions.HasSession() {
		log.Debug().Msg("no session record")
		return domain.Identity{}, domain.ErrNotAuthenticated
	}

	return a.sessions.Identity(), nil
}

func (a *AccountService) check(form any) error {
	err := a.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages[i] = field + " is required"
		case "email":
			messages[i] = field + " must be a valid email address"
		case "min":
			messages[i] = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		default:
			messages[i] = fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
		}
	}

	return &domain.ValidationError{Message: strings.Join(messages, "; ")}
}
