package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

// Identity strategies accepted by NewResolver.
const (
	StrategyID        = "id"
	StrategyEmailSlug = "email_slug"
	StrategyUsername  = "username"
)

// Resolver turns a public route parameter into a user.
// A parameter that names nobody yields an error matching store.ErrNoRows.
type Resolver interface {
	Resolve(ctx context.Context, param string) (*models.User, error)
}

// IDResolver treats the parameter as the user's id. Malformed ids resolve to no rows.
type IDResolver struct {
	Users store.UserStore
}

func (r IDResolver) Resolve(ctx context.Context, param string) (*models.User, error) {
	id, err := uuid.Parse(param)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %q: %w", param, store.ErrNoRows)
	}
	return r.Users.GetUserByID(ctx, id)
}

// EmailSlugResolver treats the parameter as the local part of the user's email.
type EmailSlugResolver struct {
	Users store.UserStore
}

func (r EmailSlugResolver) Resolve(ctx context.Context, param string) (*models.User, error) {
	return r.Users.GetUserByUsername(ctx, param)
}

// UsernameResolver matches the parameter against the username column.
type UsernameResolver struct {
	Users store.UserStore
}

func (r UsernameResolver) Resolve(ctx context.Context, param string) (*models.User, error) {
	return r.Users.GetUserByHandle(ctx, param)
}

// NewResolver returns the resolver for strategy. An empty strategy means StrategyEmailSlug.
func NewResolver(strategy string, users store.UserStore) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case StrategyID:
		return IDResolver{Users: users}, nil
	case "", StrategyEmailSlug:
		return EmailSlugResolver{Users: users}, nil
	case StrategyUsername:
		return UsernameResolver{Users: users}, nil
	default:
		return nil, fmt.Errorf("unknown identity strategy %q", strategy)
	}
}
