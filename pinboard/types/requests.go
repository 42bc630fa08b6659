package types

import "strings"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// UpdateProfileRequest carries the optional new username; the new image, if
// any, travels as a multipart file.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitnil,min=1,max=64"`
}

type CreatePostRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

type CreateBoardRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *CreateBoardRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type SavePostRequest struct {
	PostID string `json:"postId" validate:"required,uuid"`
}

func (r *SavePostRequest) Normalize() {
	r.PostID = strings.TrimSpace(r.PostID)
}
