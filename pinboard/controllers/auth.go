// pinboard/controllers/auth.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pinboard/pinboard/services/auth"
	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/psql/models"
	"pinboard/pinboard/sources/storage"
	"pinboard/pinboard/types"
	"pinboard/pinboard/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthController struct {
	userDAO *dao.UserDAO
	images  storage.ImageStore
	issuer  *auth.TokenIssuer
}

func NewAuthController(userDAO *dao.UserDAO, images storage.ImageStore, issuer *auth.TokenIssuer) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		images:  images,
		issuer:  issuer,
	}
}

// Session is a signed-in user plus the token to put in the cookie.
type Session struct {
	User    types.UserView
	Token   string
	Expires time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and signs the user in. The avatar is optional.
func (c *AuthController) Register(ctx context.Context, req types.RegisterRequest, image *ImageUpload) (*Session, error) {
	defer logging.LogDuration(ctx, "AuthController.Register")()

	email := normalizeEmail(req.Email)
	existing, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: hash,
	}
	if image != nil {
		url, err := c.images.Upload(ctx, user.ID, image.Filename, image.ContentType, image.Body, image.Size)
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		user.ImageURL = url
	}
	if err := c.userDAO.CreateUser(ctx, user); err != nil {
		if errors.Is(err, dao.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	logging.AppLogger.Info("user registered", zap.String("user_id", user.ID.String()))
	return c.session(ctx, user)
}

// Login checks the password. Unknown email and wrong password are
// indistinguishable to the caller.
func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*Session, error) {
	defer logging.LogDuration(ctx, "AuthController.Login")()

	user, err := c.userDAO.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return c.session(ctx, user)
}

func (c *AuthController) session(ctx context.Context, user *models.User) (*Session, error) {
	token, exp, err := c.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	view, err := userView(ctx, c.userDAO, user)
	if err != nil {
		return nil, err
	}
	return &Session{User: view, Token: token, Expires: exp}, nil
}
