package user

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	// UsersCollection persists the registered users.
	UsersCollection = "financial_users"
	// SessionCollection persists the current session, if any.
	SessionCollection = "financial_auth"
)

type UserRepo interface {
	GetUsers(ctx context.Context) ([]User, error)
	ReplaceUsers(ctx context.Context, users []User) error
	GetSession(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, session *Session) error
}

type UserRepoImpl struct {
	store storage.Store
}

func NewUserRepo(store storage.Store) *UserRepoImpl {
	return &UserRepoImpl{store: store}
}

func (r *UserRepoImpl) GetUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := r.store.Load(ctx, UsersCollection, &users); err != nil {
		err := fmt.Errorf("could not load users, treating as empty: %w", err)
		log.Error(err)
		return []User{}, nil
	}
	return users, nil
}

func (r *UserRepoImpl) ReplaceUsers(ctx context.Context, users []User) error {
	return r.store.Save(ctx, UsersCollection, users)
}

func (r *UserRepoImpl) GetSession(ctx context.Context) (*Session, error) {
	var session *Session
	if err := r.store.Load(ctx, SessionCollection, &session); err != nil {
		log.Warnf("could not load session, treating as signed out: %v", err)
		return nil, nil
	}
	return session, nil
}

// SaveSession persists the session; a nil session signs the user out.
func (r *UserRepoImpl) SaveSession(ctx context.Context, session *Session) error {
	return r.store.Save(ctx, SessionCollection, session)
}
