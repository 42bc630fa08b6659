package controllers

import (
	"context"
	"fmt"
	"strings"

	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/psql/models"
	"pinboard/pinboard/sources/storage"
	"pinboard/pinboard/types"
	"pinboard/pinboard/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostController struct {
	dao      *dao.PostDAO
	userDAO  *dao.UserDAO
	images   storage.ImageStore
	pageSize int
}

func NewPostController(postDAO *dao.PostDAO, userDAO *dao.UserDAO, images storage.ImageStore, pageSize int) *PostController {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &PostController{dao: postDAO, userDAO: userDAO, images: images, pageSize: pageSize}
}

// CreatePost uploads the image and stores a post owned by userID.
func (c *PostController) CreatePost(ctx context.Context, userID uuid.UUID, req types.CreatePostRequest, image *ImageUpload) (types.PostView, error) {
	defer logging.LogDuration(ctx, "PostController.CreatePost")()

	if image == nil {
		return types.PostView{}, ErrImageRequired
	}
	owner, err := c.userDAO.GetUserByID(ctx, userID)
	if err != nil {
		return types.PostView{}, err
	}
	if owner == nil {
		return types.PostView{}, ErrUserNotFound
	}

	url, err := c.images.Upload(ctx, userID, image.Filename, image.ContentType, image.Body, image.Size)
	if err != nil {
		return types.PostView{}, fmt.Errorf("upload image: %w", err)
	}
	post := &models.Post{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    url,
		UserID:      userID,
	}
	if err := c.dao.CreatePost(ctx, post); err != nil {
		return types.PostView{}, err
	}
	post.User = owner
	logging.AppLogger.Info("post created",
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return types.NewPostView(post), nil
}

// ListPosts returns feed page `page` (1-based) and whether another page exists.
func (c *PostController) ListPosts(ctx context.Context, page int) ([]types.PostView, bool, error) {
	if page < 1 {
		page = 1
	}
	posts, err := c.dao.ListPosts(ctx, (page-1)*c.pageSize, c.pageSize+1)
	if err != nil {
		return nil, false, err
	}
	hasMore := len(posts) > c.pageSize
	if hasMore {
		posts = posts[:c.pageSize]
	}
	return types.NewPostViews(posts), hasMore, nil
}

func (c *PostController) GetPost(ctx context.Context, id uuid.UUID) (types.PostView, error) {
	post, err := c.dao.GetPostByID(ctx, id)
	if err != nil {
		return types.PostView{}, err
	}
	if post == nil {
		return types.PostView{}, ErrPostNotFound
	}
	return types.NewPostView(post), nil
}

func (c *PostController) ListPostsByUser(ctx context.Context, userID uuid.UUID) ([]types.PostView, error) {
	posts, err := c.dao.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return types.NewPostViews(posts), nil
}

// DeletePost is owner-only. Likes and board references go with the post.
func (c *PostController) DeletePost(ctx context.Context, callerID, postID uuid.UUID) error {
	post, err := c.dao.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != callerID {
		return ErrForbidden
	}
	deleted, err := c.dao.DeletePost(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}
	logging.AppLogger.Info("post deleted", zap.String("post_id", postID.String()))
	return nil
}

func (c *PostController) LikePost(ctx context.Context, callerID, postID uuid.UUID) (types.PostView, error) {
	if _, err := c.GetPost(ctx, postID); err != nil {
		return types.PostView{}, err
	}
	if err := c.dao.AddLike(ctx, postID, callerID); err != nil {
		return types.PostView{}, err
	}
	return c.GetPost(ctx, postID)
}

func (c *PostController) UnlikePost(ctx context.Context, callerID, postID uuid.UUID) (types.PostView, error) {
	if _, err := c.GetPost(ctx, postID); err != nil {
		return types.PostView{}, err
	}
	if err := c.dao.RemoveLike(ctx, postID, callerID); err != nil {
		return types.PostView{}, err
	}
	return c.GetPost(ctx, postID)
}
