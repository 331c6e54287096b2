package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/newsboard/internal/apperror"
	"github.com/sakif/newsboard/internal/model"
	"github.com/sakif/newsboard/internal/repository"
)

// UserService serves the read-only user list and single-user lookups.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list users", err)
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get returns the user with the given username, or NotFound.
func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperror.InvalidField("username")
	}

	u, err := s.repo.GetUser(ctx, username)
	if err != nil {
		logFailure(s.logger, "failed to get user", err, slog.String("username", username))
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return u, nil
}
