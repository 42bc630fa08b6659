package dao

import (
	"context"
	"errors"

	"pinboard/pinboard/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardDAO struct {
	DB *gorm.DB
}

func NewBoardDAO(db *gorm.DB) *BoardDAO {
	return &BoardDAO{DB: db}
}

func (dao *BoardDAO) CreateBoard(ctx context.Context, board *models.Board) error {
	return dao.DB.WithContext(ctx).Omit(clause.Associations).Create(board).Error
}

func (dao *BoardDAO) GetBoardByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := dao.DB.WithContext(ctx).First(&board, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	boards := []models.Board{board}
	if err := dao.loadPosts(ctx, boards); err != nil {
		return nil, err
	}
	return &boards[0], nil
}

// ListBoardsByUser returns the user's boards, newest first, posts loaded.
func (dao *BoardDAO) ListBoardsByUser(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	boards := []models.Board{}
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	if err := dao.loadPosts(ctx, boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// loadPosts fills Board.Posts for every board, most recently saved first.
func (dao *BoardDAO) loadPosts(ctx context.Context, boards []models.Board) error {
	if len(boards) == 0 {
		return nil
	}
	boardIDs := make([]uuid.UUID, len(boards))
	for i := range boards {
		boardIDs[i] = boards[i].ID
		boards[i].Posts = []models.Post{}
	}

	var refs []models.BoardPost
	err := dao.DB.WithContext(ctx).
		Where("board_id IN ?", boardIDs).
		Order("created_at desc").
		Find(&refs).Error
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	postIDs := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		postIDs = append(postIDs, ref.PostID)
	}
	var posts []models.Post
	if err := dao.DB.WithContext(ctx).Where("id IN ?", postIDs).Find(&posts).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	index := make(map[uuid.UUID]int, len(boards))
	for i := range boards {
		index[boards[i].ID] = i
	}
	for _, ref := range refs {
		post, ok := byID[ref.PostID]
		if !ok {
			continue
		}
		i := index[ref.BoardID]
		boards[i].Posts = append(boards[i].Posts, post)
	}
	return nil
}

// AddPost saves a post reference into the board. Saving the same post twice
// is a no-op; the returned bool says whether a reference was added.
func (dao *BoardDAO) AddPost(ctx context.Context, boardID, postID uuid.UUID) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BoardPost{BoardID: boardID, PostID: postID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemovePost drops the reference only; the post and other boards are untouched.
func (dao *BoardDAO) RemovePost(ctx context.Context, boardID, postID uuid.UUID) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Where("board_id = ? AND post_id = ?", boardID, postID).
		Delete(&models.BoardPost{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteBoard removes the board and its references. Referenced posts survive.
func (dao *BoardDAO) DeleteBoard(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardPost{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Board{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
