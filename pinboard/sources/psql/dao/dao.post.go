package dao

import (
	"context"
	"errors"

	"pinboard/pinboard/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostDAO struct {
	DB *gorm.DB
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{DB: db}
}

func preloadLikes(db *gorm.DB) *gorm.DB {
	return db.Order("created_at asc")
}

// CreatePost stores the post and records its creator as the first liker.
func (dao *PostDAO) CreatePost(ctx context.Context, post *models.Post) error {
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		like := models.PostLike{PostID: post.ID, UserID: post.UserID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		post.Likes = []models.PostLike{like}
		return nil
	})
}

func (dao *PostDAO) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := dao.DB.WithContext(ctx).
		Preload("User").
		Preload("Likes", preloadLikes).
		First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns one page of the feed, newest first, owners loaded.
func (dao *PostDAO) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	err := dao.DB.WithContext(ctx).
		Preload("User").
		Preload("Likes", preloadLikes).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (dao *PostDAO) ListPostsByUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	posts := []models.Post{}
	err := dao.DB.WithContext(ctx).
		Preload("User").
		Preload("Likes", preloadLikes).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost removes the post together with its likes and every board
// reference to it. It reports whether the post existed.
func (dao *PostDAO) DeletePost(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.BoardPost{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// AddLike is idempotent.
func (dao *PostDAO) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	return dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostLike{PostID: postID, UserID: userID}).Error
}

func (dao *PostDAO) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	return dao.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error
}
