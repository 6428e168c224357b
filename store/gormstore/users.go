package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUserBy(ctx, "get user by id", "id", id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserBy(ctx, "get user by email", "email", email)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserBy(ctx, "get user by username", "email", store.EmailForUsername(username, s.emailDomain))
}

func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getUserBy(ctx, "get user by handle", "username", handle)
}

func (s *Store) getUserBy(ctx context.Context, op, column string, value interface{}) (*models.User, error) {
	var user models.User
	err := s.run(ctx, op, store.TableUsers, func(db *gorm.DB) error {
		return db.Where(column+" = ?", value).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts user. The id is generated here when the caller left it unset.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	row := *user
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := s.run(ctx, "create user", store.TableUsers, func(db *gorm.DB) error {
		return db.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	var user models.User
	if err := s.patch(ctx, "update user", store.TableUsers, id, patch.Fields(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}
