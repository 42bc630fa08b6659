package types

import (
	"time"

	"pinboard/pinboard/sources/psql/models"

	"github.com/google/uuid"
)

// UserView is the public shape of a user. The password hash never leaves the
// store layer.
type UserView struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	ImageURL  string      `json:"image_url"`
	Posts     []uuid.UUID `json:"posts"`
	Boards    []uuid.UUID `json:"boards"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewUserView(u *models.User, postIDs, boardIDs []uuid.UUID) UserView {
	if postIDs == nil {
		postIDs = []uuid.UUID{}
	}
	if boardIDs == nil {
		boardIDs = []uuid.UUID{}
	}
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		Posts:     postIDs,
		Boards:    boardIDs,
		CreatedAt: u.CreatedAt,
	}
}

// OwnerSummary is the slice of a user joined onto posts.
type OwnerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	ImageURL string    `json:"image_url"`
}

type PostView struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	UserID      uuid.UUID     `json:"user_id"`
	User        *OwnerSummary `json:"user,omitempty"`
	Likes       []uuid.UUID   `json:"likes"`
	CreatedAt   time.Time     `json:"created_at"`
}

func NewPostView(p *models.Post) PostView {
	view := PostView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		UserID:      p.UserID,
		Likes:       make([]uuid.UUID, 0, len(p.Likes)),
		CreatedAt:   p.CreatedAt,
	}
	for _, l := range p.Likes {
		view.Likes = append(view.Likes, l.UserID)
	}
	if p.User != nil {
		view.User = &OwnerSummary{ID: p.User.ID, Username: p.User.Username, ImageURL: p.User.ImageURL}
	}
	return view
}

func NewPostViews(posts []models.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, NewPostView(&posts[i]))
	}
	return views
}

// PostSummary is how a post appears inside a board.
type PostSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
}

type BoardView struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	UserID    uuid.UUID     `json:"user_id"`
	Posts     []PostSummary `json:"posts"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewBoardView(b *models.Board) BoardView {
	view := BoardView{
		ID:        b.ID,
		Name:      b.Name,
		UserID:    b.UserID,
		Posts:     make([]PostSummary, 0, len(b.Posts)),
		CreatedAt: b.CreatedAt,
	}
	for _, p := range b.Posts {
		view.Posts = append(view.Posts, PostSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			ImageURL:    p.ImageURL,
		})
	}
	return view
}

func NewBoardViews(boards []models.Board) []BoardView {
	views := make([]BoardView, 0, len(boards))
	for i := range boards {
		views = append(views, NewBoardView(&boards[i]))
	}
	return views
}

// Envelopes. Every response carries the success flag.

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UserResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	User    UserView `json:"user"`
}

type PostResponse struct {
	Success bool     `json:"success"`
	Post    PostView `json:"post"`
}

type PostsResponse struct {
	Success bool       `json:"success"`
	Posts   []PostView `json:"posts"`
	Page    int        `json:"page,omitempty"`
	HasMore bool       `json:"has_more"`
}

type BoardResponse struct {
	Success bool      `json:"success"`
	Board   BoardView `json:"board"`
}

type BoardsResponse struct {
	Success bool        `json:"success"`
	Boards  []BoardView `json:"boards"`
}

type DashboardResponse struct {
	Success bool        `json:"success"`
	User    UserView    `json:"user"`
	Posts   []PostView  `json:"posts"`
	Boards  []BoardView `json:"boards"`
}
