package service

import (
	"context"

	"github.com/xxxsen/markbook/internal/model"
	"github.com/xxxsen/markbook/internal/pkg/timeutil"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Edit applies patch to the caller's own profile and returns the result.
func (s *UserService) Edit(ctx context.Context, userID string, patch model.UserPatch) (model.Identity, error) {
	if !patch.Empty() {
		if err := s.users.Update(ctx, userID, patch, timeutil.NowUnix()); err != nil {
			return model.Identity{}, err
		}
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.Identity{}, err
	}
	return user.Identity(), nil
}
