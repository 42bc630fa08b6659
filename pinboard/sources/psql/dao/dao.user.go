package dao

import (
	"context"
	"errors"

	"pinboard/pinboard/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDuplicateEmail = errors.New("email already registered")

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

// CreateUser inserts the user. The unique index on email is the final word
// on duplicates, so a concurrent registration surfaces as ErrDuplicateEmail.
func (dao *UserDAO) CreateUser(ctx context.Context, user *models.User) error {
	err := dao.DB.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (dao *UserDAO) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the given column updates and returns the fresh row, or
// nil when the user does not exist.
func (dao *UserDAO) UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.User, error) {
	if len(updates) > 0 {
		err := dao.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}
	return dao.GetUserByID(ctx, id)
}

// GetPostIDs lists the ids of the user's posts, newest first.
func (dao *UserDAO) GetPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := dao.DB.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetBoardIDs lists the ids of the user's boards, newest first.
func (dao *UserDAO) GetBoardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := dao.DB.WithContext(ctx).Model(&models.Board{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
