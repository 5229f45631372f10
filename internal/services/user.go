package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	userrepo "github.com/yungbote/wardrobe-backend/internal/data/repos/user"
	types "github.com/yungbote/wardrobe-backend/internal/domain/user"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

var ErrUserNotFound = apierr.New(http.StatusNotFound, "user_not_found", errors.New("user does not exist"))

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo userrepo.UserRepo
}

func NewUserService(log *logger.Logger, userRepo userrepo.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return us.getUser(dbctx.Context{Ctx: ctx}, rd.UserID)
}

func (us *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_name", errors.New("first and last name are required"))
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := us.userRepo.UpdateName(dbc, rd.UserID, firstName, lastName); err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}
	return us.getUser(dbc, rd.UserID)
}

func (us *userService) getUser(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrUserNotFound
	}
	return found[0], nil
}
