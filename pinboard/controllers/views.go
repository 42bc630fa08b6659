package controllers

import (
	"context"

	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/psql/models"
	"pinboard/pinboard/types"
)

// userView joins the derived post and board id lists onto the user.
func userView(ctx context.Context, users *dao.UserDAO, u *models.User) (types.UserView, error) {
	postIDs, err := users.GetPostIDs(ctx, u.ID)
	if err != nil {
		return types.UserView{}, err
	}
	boardIDs, err := users.GetBoardIDs(ctx, u.ID)
	if err != nil {
		return types.UserView{}, err
	}
	return types.NewUserView(u, postIDs, boardIDs), nil
}
