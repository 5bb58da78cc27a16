package user

import (
	"context"
	"strings"

	"github.com/fintrack/fintrack/internal/common"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (Session, error)
	Login(ctx context.Context, input LoginInput) (Session, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
}

type UserServiceImpl struct {
	repo  UserRepo
	clock utils.Clock
}

func NewUserService(repo UserRepo, clock utils.Clock) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, clock: clock}
}

func (s *UserServiceImpl) Register(ctx context.Context, input RegisterInput) (Session, error) {
	if strings.TrimSpace(input.Email) == "" {
		return Session{}, common.NewValidationError("email", "must not be empty")
	}
	if strings.TrimSpace(input.Name) == "" {
		return Session{}, common.NewValidationError("name", "must not be empty")
	}

	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, input.Email) {
			return Session{}, common.NewValidationError("email", "is already in use")
		}
	}

	plan := input.Plan
	if plan == "" {
		plan = PlanFree
	}
	now := s.clock.Now()
	newUser := User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}

	users = append(users, newUser)
	if err := s.repo.ReplaceUsers(ctx, users); err != nil {
		return Session{}, err
	}

	session := Session{User: newUser, Token: uuid.NewString()}
	if err := s.repo.SaveSession(ctx, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Login maps an email to its user and issues an opaque token. This is a stub:
// no password is verified.
func (s *UserServiceImpl) Login(ctx context.Context, input LoginInput) (Session, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, input.Email) {
			session := Session{User: u, Token: uuid.NewString()}
			if err := s.repo.SaveSession(ctx, &session); err != nil {
				return Session{}, err
			}
			return session, nil
		}
	}
	return Session{}, common.NewNotFoundError("user", input.Email)
}

func (s *UserServiceImpl) Logout(ctx context.Context) error {
	return s.repo.SaveSession(ctx, nil)
}

func (s *UserServiceImpl) GetCurrentUser(ctx context.Context) (*User, error) {
	session, err := s.repo.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return &session.User, nil
}

func (s *UserServiceImpl) IsAuthenticated(ctx context.Context) (bool, error) {
	current, err := s.GetCurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return current != nil, nil
}
