package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/wanderlust/internal/access"
	"github.com/Domenick1991/wanderlust/internal/auth"
	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/repository"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"go.uber.org/zap"
)

const minPasswordLength = 6

var errBadCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)

type UserUseCase interface {
	Signup(ctx context.Context, input SignupInput) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	List(ctx context.Context, caller *domain.Identity) ([]domain.User, error)
	Delete(ctx context.Context, caller *domain.Identity, userID int64) error
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Session is a signed-in user with its bearer token.
type Session struct {
	User  *domain.User
	Token string
}

type UserService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
	log    *logger.Logger
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer, log *logger.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, log: logger.OrGlobal(log).Named("users")}
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	case !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	case len(input.Password) < minPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: a user with the given username is already registered", domain.ErrConflict)
		}
		return nil, err
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	return s.session(user)
}

// Login never tells an unknown username apart from a wrong password.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		s.log.Error("check password", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, errBadCredentials
	}
	if !ok {
		return nil, errBadCredentials
	}
	return s.session(user)
}

func (s *UserService) List(ctx context.Context, caller *domain.Identity) ([]domain.User, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Delete removes a user account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, caller *domain.Identity, userID int64) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}
	if caller.UserID == userID {
		return fmt.Errorf("%w: you cannot delete your own account", domain.ErrValidation)
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Int64("user_id", userID), zap.Int64("by", caller.UserID))
	return nil
}

func (s *UserService) session(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

var _ UserUseCase = (*UserService)(nil)
