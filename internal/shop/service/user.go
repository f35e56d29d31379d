package service

import (
	"context"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/store"
)

// UserService covers profile reads for authenticated users.
type UserService struct {
	Store store.Store
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}
