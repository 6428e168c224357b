package rest

import (
	"context"

	"github.com/google/uuid"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

// GetUserByID fetches the user with the given id.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUserBy(ctx, "get user by id", "id", id.String())
}

// GetUserByEmail fetches the user with the given email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserBy(ctx, "get user by email", "email", email)
}

// GetUserByUsername fetches the user whose email is {username}@{email domain}.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserBy(ctx, "get user by username", "email", store.EmailForUsername(username, s.emailDomain))
}

// GetUserByHandle fetches the user by the explicit username column.
func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getUserBy(ctx, "get user by handle", "username", handle)
}

func (s *Store) getUserBy(ctx context.Context, op, column, value string) (*models.User, error) {
	var users []models.User
	q := s.db.From(store.TableUsers).
		Select("*", "", false).
		Eq(column, value).
		Limit(1, "")
	if err := s.run(ctx, op, store.TableUsers, q, &users); err != nil {
		return nil, err
	}
	return one(op, store.TableUsers, users)
}

// CreateUser inserts user and returns the persisted row.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "create user"
	var users []models.User
	if err := s.insert(ctx, op, store.TableUsers, user, &users); err != nil {
		return nil, err
	}
	return one(op, store.TableUsers, users)
}

// UpdateUser applies patch to the user with the given id and returns the updated row.
func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	const op = "update user"
	var users []models.User
	if err := s.update(ctx, op, store.TableUsers, id, patch.Fields(), &users); err != nil {
		return nil, err
	}
	return one(op, store.TableUsers, users)
}
