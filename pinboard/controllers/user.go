// pinboard/controllers/user.go
package controllers

import (
	"context"
	"fmt"
	"strings"

	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/storage"
	"pinboard/pinboard/types"

	"github.com/google/uuid"
)

type UserController struct {
	dao     *dao.UserDAO
	postDAO *dao.PostDAO
	boards  *dao.BoardDAO
	images  storage.ImageStore
}

func NewUserController(userDAO *dao.UserDAO, postDAO *dao.PostDAO, boardDAO *dao.BoardDAO, images storage.ImageStore) *UserController {
	return &UserController{dao: userDAO, postDAO: postDAO, boards: boardDAO, images: images}
}

func (c *UserController) GetProfile(ctx context.Context, id uuid.UUID) (types.UserView, error) {
	user, err := c.dao.GetUserByID(ctx, id)
	if err != nil {
		return types.UserView{}, err
	}
	if user == nil {
		return types.UserView{}, ErrUserNotFound
	}
	return userView(ctx, c.dao, user)
}

// UpdateProfile replaces the username and/or the avatar. Only the caller's
// own profile can be changed.
func (c *UserController) UpdateProfile(ctx context.Context, id uuid.UUID, req types.UpdateProfileRequest, image *ImageUpload) (types.UserView, error) {
	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = strings.TrimSpace(*req.Username)
	}
	if image != nil {
		url, err := c.images.Upload(ctx, id, image.Filename, image.ContentType, image.Body, image.Size)
		if err != nil {
			return types.UserView{}, fmt.Errorf("upload avatar: %w", err)
		}
		updates["image_url"] = url
	}
	user, err := c.dao.UpdateUser(ctx, id, updates)
	if err != nil {
		return types.UserView{}, err
	}
	if user == nil {
		return types.UserView{}, ErrUserNotFound
	}
	return userView(ctx, c.dao, user)
}

// Dashboard gathers the caller's profile, own posts and own boards.
func (c *UserController) Dashboard(ctx context.Context, id uuid.UUID) (*types.DashboardResponse, error) {
	profile, err := c.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := c.postDAO.ListPostsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	boards, err := c.boards.ListBoardsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &types.DashboardResponse{
		Success: true,
		User:    profile,
		Posts:   types.NewPostViews(posts),
		Boards:  types.NewBoardViews(boards),
	}, nil
}
