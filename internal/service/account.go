package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"notebook/internal/domain"
	"notebook/internal/domain/models"
	"notebook/internal/domain/repositories"
	"notebook/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// accountService implements AccountService
type accountService struct {
	userRepo  repositories.UserRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.AccountService {
	return &accountService{
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetAccount returns the requester's own user record
func (s *accountService) GetAccount(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateAccount renames the user and/or changes their email. Taken values
// surface as ConflictError from the repository.
func (s *accountService) UpdateAccount(ctx context.Context, userID int64, req *services.UpdateAccountRequest) (*models.User, error) {
	if req.Username == nil && req.Email == nil {
		return nil, domain.NewValidation("at least one field must be provided")
	}

	var user *models.User
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if req.Username != nil {
			user.Username = strings.TrimSpace(*req.Username)
		}
		if req.Email != nil {
			user.Email = normalizeEmail(*req.Email)
		}
		if err := validateProfile(user.Username, user.Email); err != nil {
			return err
		}

		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account updated", "user_id", userID, "username", user.Username)
	return user, nil
}

// DeleteAccount deletes the user; the backend cascades to everything they own
func (s *accountService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.userRepo.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

// CreateAccount validates and stores a new user
func (s *accountService) CreateAccount(ctx context.Context, req *services.CreateAccountRequest) (*models.User, error) {
	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    normalizeEmail(req.Email),
	}
	if err := validateProfile(user.Username, user.Email); err != nil {
		return nil, err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// ListAccounts returns every user ordered by id
func (s *accountService) ListAccounts(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateProfile checks a username (3-50 letters, digits or underscores)
// and an email address
func validateProfile(username, email string) error {
	err := validation.Errors{
		"username": validation.Validate(username,
			validation.Required,
			validation.RuneLength(3, 50),
			validation.Match(usernamePattern).Error("must contain only letters, numbers and underscores"),
		),
		"email": validation.Validate(email,
			validation.Required,
			validation.RuneLength(1, 255),
			is.EmailFormat,
		),
	}.Filter()
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		return domain.NewValidation(err.Error())
	}
	return err
}
