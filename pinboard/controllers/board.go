package controllers

import (
	"context"
	"strings"

	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/psql/models"
	"pinboard/pinboard/types"

	"github.com/google/uuid"
)

type BoardController struct {
	dao     *dao.BoardDAO
	postDAO *dao.PostDAO
	userDAO *dao.UserDAO
}

func NewBoardController(boardDAO *dao.BoardDAO, postDAO *dao.PostDAO, userDAO *dao.UserDAO) *BoardController {
	return &BoardController{dao: boardDAO, postDAO: postDAO, userDAO: userDAO}
}

func (c *BoardController) CreateBoard(ctx context.Context, userID uuid.UUID, req types.CreateBoardRequest) (types.BoardView, error) {
	owner, err := c.userDAO.GetUserByID(ctx, userID)
	if err != nil {
		return types.BoardView{}, err
	}
	if owner == nil {
		return types.BoardView{}, ErrUserNotFound
	}
	board := &models.Board{Name: strings.TrimSpace(req.Name), UserID: userID}
	if err := c.dao.CreateBoard(ctx, board); err != nil {
		return types.BoardView{}, err
	}
	return types.NewBoardView(board), nil
}

// ListBoardsByUser serves both "my boards" and another user's profile view.
func (c *BoardController) ListBoardsByUser(ctx context.Context, userID uuid.UUID) ([]types.BoardView, error) {
	boards, err := c.dao.ListBoardsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return types.NewBoardViews(boards), nil
}

func (c *BoardController) GetBoard(ctx context.Context, id uuid.UUID) (types.BoardView, error) {
	board, err := c.dao.GetBoardByID(ctx, id)
	if err != nil {
		return types.BoardView{}, err
	}
	if board == nil {
		return types.BoardView{}, ErrBoardNotFound
	}
	return types.NewBoardView(board), nil
}

// ownedBoard loads the board and checks that callerID owns it.
func (c *BoardController) ownedBoard(ctx context.Context, callerID, boardID uuid.UUID) (*models.Board, error) {
	board, err := c.dao.GetBoardByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if board.UserID != callerID {
		return nil, ErrForbidden
	}
	return board, nil
}

// SavePost adds a reference to an existing post. Saving twice is harmless and
// reports added=false.
func (c *BoardController) SavePost(ctx context.Context, callerID, boardID, postID uuid.UUID) (bool, error) {
	if _, err := c.ownedBoard(ctx, callerID, boardID); err != nil {
		return false, err
	}
	post, err := c.postDAO.GetPostByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}
	return c.dao.AddPost(ctx, boardID, postID)
}

// RemovePost drops the reference from this board only.
func (c *BoardController) RemovePost(ctx context.Context, callerID, boardID, postID uuid.UUID) error {
	if _, err := c.ownedBoard(ctx, callerID, boardID); err != nil {
		return err
	}
	_, err := c.dao.RemovePost(ctx, boardID, postID)
	return err
}

func (c *BoardController) DeleteBoard(ctx context.Context, callerID, boardID uuid.UUID) error {
	if _, err := c.ownedBoard(ctx, callerID, boardID); err != nil {
		return err
	}
	deleted, err := c.dao.DeleteBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBoardNotFound
	}
	return nil
}
