package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/routes"
	"pinboard/pinboard/services/auth"
	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/psql/models"
	"pinboard/pinboard/sources/psql/psqltest"
	"pinboard/pinboard/sources/storage"
	"pinboard/pinboard/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

type server struct {
	handler http.Handler
	db      *gorm.DB
	images  *storage.MemoryStore
}

func newServer(t *testing.T, rateLimit int) *server {
	t.Helper()
	db := psqltest.NewDatabase(t)
	images := storage.NewMemoryStore("http://img.test/%s")
	userDAO := dao.NewUserDAO(db.DB)
	postDAO := dao.NewPostDAO(db.DB)
	boardDAO := dao.NewBoardDAO(db.DB)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	h := routes.NewRouter(routes.Deps{
		Auth:           controllers.NewAuthController(userDAO, images, issuer),
		Users:          controllers.NewUserController(userDAO, postDAO, boardDAO, images),
		Posts:          controllers.NewPostController(postDAO, userDAO, images, 2),
		Boards:         controllers.NewBoardController(boardDAO, postDAO, userDAO),
		Health:         controllers.NewHealthController(db),
		Issuer:         issuer,
		Cookie:         auth.CookieOptions{Name: "token", SameSite: "lax"},
		AuthRateLimit:  rateLimit,
		MaxUploadBytes: 1 << 20,
	})
	return &server{handler: h, db: db.DB, images: images}
}

func (s *server) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *server) doJSON(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, cookie)
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "pic.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func tokenCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c
		}
	}
	return nil
}

func (s *server) register(t *testing.T, email string) (types.UserView, *http.Cookie) {
	t.Helper()
	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "user " + email,
		"email":    email,
		"password": "secret123",
	}, nil)
	rr := s.do(req, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	cookie := tokenCookie(rr)
	require.NotNil(t, cookie)
	return decode[types.UserResponse](t, rr).User, cookie
}

func (s *server) createPost(t *testing.T, cookie *http.Cookie, title string) types.PostView {
	t.Helper()
	req := multipartRequest(t, http.MethodPost, "/posts/create", map[string]string{
		"title":       title,
		"description": "about " + title,
	}, pngBytes)
	rr := s.do(req, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[types.PostResponse](t, rr).Post
}

func (s *server) createBoard(t *testing.T, cookie *http.Cookie, name string) types.BoardView {
	t.Helper()
	rr := s.doJSON(http.MethodPost, "/boards", map[string]string{"name": name}, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[types.BoardResponse](t, rr).Board
}

func (s *server) profile(t *testing.T, cookie *http.Cookie) types.UserView {
	t.Helper()
	rr := s.do(httptest.NewRequest(http.MethodGet, "/profile", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[types.UserResponse](t, rr).User
}

func (s *server) board(t *testing.T, id uuid.UUID) types.BoardView {
	t.Helper()
	rr := s.do(httptest.NewRequest(http.MethodGet, "/boards/"+id.String(), nil), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[types.BoardResponse](t, rr).Board
}

func TestRegister(t *testing.T) {
	s := newServer(t, 0)

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "ada",
		"email":    "Ada@Example.com",
		"password": "secret123",
	}, pngBytes)
	rr := s.do(req, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	res := decode[types.UserResponse](t, rr)
	assert.True(t, res.Success)
	assert.Equal(t, "User registered successfully", res.Message)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.True(t, strings.HasPrefix(res.User.ImageURL, "http://img.test/"))
	assert.Empty(t, res.User.Posts)
	assert.NotContains(t, rr.Body.String(), "password")

	cookie := tokenCookie(rr)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Len(t, s.images.Objects(), 1)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newServer(t, 0)
	s.register(t, "dup@example.com")

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "again",
		"email":    "DUP@example.com",
		"password": "secret123",
	}, pngBytes)
	rr := s.do(req, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	res := decode[types.MessageResponse](t, rr)
	assert.False(t, res.Success)
	assert.Nil(t, tokenCookie(rr))

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Empty(t, s.images.Objects())
}

func TestRegister_Validation(t *testing.T) {
	s := newServer(t, 0)

	cases := map[string]map[string]string{
		"missing email":  {"username": "a", "password": "secret123"},
		"bad email":      {"username": "a", "email": "nope", "password": "secret123"},
		"short password": {"username": "a", "email": "a@example.com", "password": "123"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			rr := s.do(multipartRequest(t, http.MethodPost, "/register", fields, nil), nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, decode[types.MessageResponse](t, rr).Success)
		})
	}
}

func TestRegister_RejectsNonImage(t *testing.T) {
	s := newServer(t, 0)

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "a",
		"email":    "a@example.com",
		"password": "secret123",
	}, []byte("just some text"))
	rr := s.do(req, nil)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	s := newServer(t, 0)
	user, _ := s.register(t, "log@example.com")

	rr := s.doJSON(http.MethodPost, "/login", map[string]string{
		"email":    "log@example.com",
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decode[types.UserResponse](t, rr)
	assert.True(t, res.Success)
	assert.Equal(t, user.ID, res.User.ID)

	cookie := tokenCookie(rr)
	require.NotNil(t, cookie)
	assert.Equal(t, user.ID, s.profile(t, cookie).ID)
}

func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	s := newServer(t, 0)
	s.register(t, "log@example.com")

	for _, body := range []map[string]string{
		{"email": "log@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		rr := s.doJSON(http.MethodPost, "/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "invalid email or password", decode[types.MessageResponse](t, rr).Message)
		assert.Nil(t, tokenCookie(rr))
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newServer(t, 0)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/logout", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthRateLimit(t *testing.T) {
	s := newServer(t, 2)

	body := map[string]string{"email": "x@example.com", "password": "secret123"}
	for i := 0; i < 2; i++ {
		rr := s.doJSON(http.MethodPost, "/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
	rr := s.doJSON(http.MethodPost, "/login", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.False(t, decode[types.MessageResponse](t, rr).Success)
}

func TestProtectedRoutesRequireCookie(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "owner@example.com")
	post := s.createPost(t, cookie, "kept")
	board := s.createBoard(t, cookie, "kept")

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/profile", nil),
		httptest.NewRequest(http.MethodGet, "/dashboard", nil),
		multipartRequest(t, http.MethodPut, "/profile/update", map[string]string{"username": "x"}, nil),
		multipartRequest(t, http.MethodPost, "/posts/create", map[string]string{"title": "x"}, pngBytes),
		httptest.NewRequest(http.MethodGet, "/posts/"+post.ID.String(), nil),
		httptest.NewRequest(http.MethodDelete, "/posts/"+post.ID.String(), nil),
		httptest.NewRequest(http.MethodPost, "/boards", strings.NewReader(`{"name":"x"}`)),
		httptest.NewRequest(http.MethodGet, "/boards", nil),
		httptest.NewRequest(http.MethodPost, "/boards/"+board.ID.String()+"/save", strings.NewReader(`{"postId":"`+post.ID.String()+`"}`)),
		httptest.NewRequest(http.MethodDelete, "/boards/"+board.ID.String(), nil),
	}
	for _, req := range requests {
		rr := s.do(req, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", req.Method, req.URL.Path)
		assert.False(t, decode[types.MessageResponse](t, rr).Success)
	}

	var posts, boards, refs int64
	require.NoError(t, s.db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, s.db.Model(&models.Board{}).Count(&boards).Error)
	require.NoError(t, s.db.Model(&models.BoardPost{}).Count(&refs).Error)
	assert.EqualValues(t, 1, posts)
	assert.EqualValues(t, 1, boards)
	assert.Zero(t, refs)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	s := newServer(t, 0)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/profile", nil), &http.Cookie{Name: "token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateProfile(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "me@example.com")

	req := multipartRequest(t, http.MethodPut, "/profile/update", map[string]string{"username": "  renamed  "}, pngBytes)
	rr := s.do(req, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	user := decode[types.UserResponse](t, rr).User
	assert.Equal(t, "renamed", user.Username)
	assert.NotEmpty(t, user.ImageURL)

	// Blank username leaves the name alone.
	req = multipartRequest(t, http.MethodPost, "/profile/update", map[string]string{"username": "   "}, nil)
	rr = s.do(req, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "renamed", decode[types.UserResponse](t, rr).User.Username)
}

func TestCreatePost_GrowsProfile(t *testing.T) {
	s := newServer(t, 0)
	user, cookie := s.register(t, "poster@example.com")
	before := s.profile(t, cookie)

	post := s.createPost(t, cookie, "sunset")

	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "sunset", post.Title)
	assert.Contains(t, post.Likes, user.ID)
	require.NotNil(t, post.User)
	assert.Equal(t, user.Username, post.User.Username)

	after := s.profile(t, cookie)
	assert.Len(t, after.Posts, len(before.Posts)+1)
	assert.Contains(t, after.Posts, post.ID)
}

func TestCreatePost_RequiresImageAndTitle(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "poster@example.com")

	rr := s.do(multipartRequest(t, http.MethodPost, "/posts/create", map[string]string{"title": "no image"}, nil), cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(multipartRequest(t, http.MethodPost, "/posts/create", map[string]string{"title": ""}, pngBytes), cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Empty(t, s.profile(t, cookie).Posts)
}

func TestFeedPagination(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "feed@example.com")
	for i := 0; i < 3; i++ {
		s.createPost(t, cookie, fmt.Sprintf("post-%d", i))
		time.Sleep(2 * time.Millisecond)
	}

	rr := s.do(httptest.NewRequest(http.MethodGet, "/posts", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	page1 := decode[types.PostsResponse](t, rr)
	require.Len(t, page1.Posts, 2)
	assert.True(t, page1.HasMore)
	assert.Equal(t, "post-2", page1.Posts[0].Title)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/posts?page=2", nil), nil)
	page2 := decode[types.PostsResponse](t, rr)
	require.Len(t, page2.Posts, 1)
	assert.False(t, page2.HasMore)
	assert.Equal(t, "post-0", page2.Posts[0].Title)
}

func TestGetPost(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "a@example.com")
	post := s.createPost(t, cookie, "one")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/posts/"+post.ID.String(), nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, post.ID, decode[types.PostResponse](t, rr).Post.ID)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/posts/"+uuid.NewString(), nil), cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/posts/not-an-id", nil), cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostsByUser(t *testing.T) {
	s := newServer(t, 0)
	alice, aliceCookie := s.register(t, "alice@example.com")
	_, bobCookie := s.register(t, "bob@example.com")
	s.createPost(t, aliceCookie, "a1")
	s.createPost(t, bobCookie, "b1")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/posts/user/"+alice.ID.String(), nil), bobCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	posts := decode[types.PostsResponse](t, rr).Posts
	require.Len(t, posts, 1)
	assert.Equal(t, "a1", posts[0].Title)
}

func TestLikeAndUnlike(t *testing.T) {
	s := newServer(t, 0)
	_, aliceCookie := s.register(t, "alice@example.com")
	bob, bobCookie := s.register(t, "bob@example.com")
	post := s.createPost(t, aliceCookie, "likeable")

	path := "/posts/" + post.ID.String() + "/like"
	for i := 0; i < 2; i++ {
		rr := s.do(httptest.NewRequest(http.MethodPut, path, nil), bobCookie)
		require.Equal(t, http.StatusOK, rr.Code)
		likes := decode[types.PostResponse](t, rr).Post.Likes
		assert.Len(t, likes, 2)
		assert.Contains(t, likes, bob.ID)
	}

	rr := s.do(httptest.NewRequest(http.MethodDelete, path, nil), bobCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, decode[types.PostResponse](t, rr).Post.Likes, bob.ID)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	s := newServer(t, 0)
	_, aliceCookie := s.register(t, "alice@example.com")
	_, bobCookie := s.register(t, "bob@example.com")
	post := s.createPost(t, aliceCookie, "mine")
	board := s.createBoard(t, aliceCookie, "faves")
	rr := s.doJSON(http.MethodPost, "/boards/"+board.ID.String()+"/save", map[string]string{"postId": post.ID.String()}, aliceCookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodDelete, "/posts/"+post.ID.String(), nil), bobCookie)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodDelete, "/posts/"+post.ID.String(), nil), aliceCookie)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Empty(t, s.profile(t, aliceCookie).Posts)
	assert.Empty(t, s.board(t, board.ID).Posts)
}

func TestSavePost_Idempotent(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "saver@example.com")
	post := s.createPost(t, cookie, "pin")
	board := s.createBoard(t, cookie, "ideas")

	path := "/boards/" + board.ID.String() + "/save"
	rr := s.doJSON(http.MethodPost, path, map[string]string{"postId": post.ID.String()}, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Post saved to board!", decode[types.MessageResponse](t, rr).Message)

	rr = s.doJSON(http.MethodPost, path, map[string]string{"postId": post.ID.String()}, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Post already saved to board", decode[types.MessageResponse](t, rr).Message)

	posts := s.board(t, board.ID).Posts
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestSavePost_Errors(t *testing.T) {
	s := newServer(t, 0)
	_, aliceCookie := s.register(t, "alice@example.com")
	_, bobCookie := s.register(t, "bob@example.com")
	post := s.createPost(t, aliceCookie, "pin")
	board := s.createBoard(t, aliceCookie, "ideas")
	path := "/boards/" + board.ID.String() + "/save"

	rr := s.doJSON(http.MethodPost, path, map[string]string{"postId": post.ID.String()}, bobCookie)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.doJSON(http.MethodPost, path, map[string]string{"postId": uuid.NewString()}, aliceCookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.doJSON(http.MethodPost, path, map[string]string{"postId": "nope"}, aliceCookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.doJSON(http.MethodPost, "/boards/"+uuid.NewString()+"/save", map[string]string{"postId": post.ID.String()}, aliceCookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Empty(t, s.board(t, board.ID).Posts)
}

func TestRemovePost_KeepsOtherBoards(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "saver@example.com")
	post := s.createPost(t, cookie, "pin")
	first := s.createBoard(t, cookie, "first")
	second := s.createBoard(t, cookie, "second")
	for _, b := range []types.BoardView{first, second} {
		rr := s.doJSON(http.MethodPost, "/boards/"+b.ID.String()+"/save", map[string]string{"postId": post.ID.String()}, cookie)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := s.do(httptest.NewRequest(http.MethodDelete, "/boards/"+first.ID.String()+"/posts/"+post.ID.String(), nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.Empty(t, s.board(t, first.ID).Posts)
	assert.Len(t, s.board(t, second.ID).Posts, 1)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/posts/"+post.ID.String(), nil), cookie)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeleteBoard_KeepsPosts(t *testing.T) {
	s := newServer(t, 0)
	user, cookie := s.register(t, "owner@example.com")
	_, otherCookie := s.register(t, "other@example.com")
	post := s.createPost(t, cookie, "pin")
	board := s.createBoard(t, cookie, "temp")
	rr := s.doJSON(http.MethodPost, "/boards/"+board.ID.String()+"/save", map[string]string{"postId": post.ID.String()}, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, s.profile(t, cookie).Boards, board.ID)

	rr = s.do(httptest.NewRequest(http.MethodDelete, "/boards/"+board.ID.String(), nil), otherCookie)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodDelete, "/boards/"+board.ID.String(), nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Board deleted successfully", decode[types.MessageResponse](t, rr).Message)

	assert.NotContains(t, s.profile(t, cookie).Boards, board.ID)
	rr = s.do(httptest.NewRequest(http.MethodGet, "/boards/"+board.ID.String(), nil), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/posts/"+post.ID.String(), nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, user.ID, decode[types.PostResponse](t, rr).Post.UserID)
}

func TestBoardsListing(t *testing.T) {
	s := newServer(t, 0)
	alice, aliceCookie := s.register(t, "alice@example.com")
	_, bobCookie := s.register(t, "bob@example.com")
	s.createBoard(t, aliceCookie, "a")
	s.createBoard(t, aliceCookie, "b")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/boards", nil), aliceCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[types.BoardsResponse](t, rr).Boards, 2)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/boards", nil), bobCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[types.BoardsResponse](t, rr).Boards)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/boards/user/"+alice.ID.String(), nil), bobCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[types.BoardsResponse](t, rr).Boards, 2)
}

func TestCreateBoard_Validation(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "a@example.com")

	rr := s.doJSON(http.MethodPost, "/boards", map[string]string{"name": ""}, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/boards", strings.NewReader("{not json"))
	rr = s.do(req, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboard(t *testing.T) {
	s := newServer(t, 0)
	user, cookie := s.register(t, "dash@example.com")
	s.createPost(t, cookie, "p")
	s.createBoard(t, cookie, "b")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	dash := decode[types.DashboardResponse](t, rr)
	assert.True(t, dash.Success)
	assert.Equal(t, user.ID, dash.User.ID)
	assert.Len(t, dash.Posts, 1)
	assert.Len(t, dash.Boards, 1)
}

func TestUploadFailureIsServerError(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "a@example.com")
	s.images.Err = io.ErrClosedPipe

	rr := s.do(multipartRequest(t, http.MethodPost, "/posts/create", map[string]string{"title": "x"}, pngBytes), cookie)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server error", decode[types.MessageResponse](t, rr).Message)
	assert.Empty(t, s.profile(t, cookie).Posts)
}

func TestHealthz(t *testing.T) {
	s := newServer(t, 0)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRegister_MultibytePasswordOverByteLimit(t *testing.T) {
	s := newServer(t, 0)

	req := multipartRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "ada",
		"email":    "ada@example.com",
		"password": strings.Repeat("é", 40),
	}, nil)
	rr := s.do(req, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Contains(t, decode[types.MessageResponse](t, rr).Message, "password")
	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBlankTitleAndBoardNameRejected(t *testing.T) {
	s := newServer(t, 0)
	_, cookie := s.register(t, "blank@example.com")

	rr := s.do(multipartRequest(t, http.MethodPost, "/posts/create", map[string]string{"title": "   "}, pngBytes), cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Empty(t, s.profile(t, cookie).Posts)
	assert.Empty(t, s.images.Objects())

	rr = s.doJSON(http.MethodPost, "/boards", map[string]string{"name": "   "}, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Empty(t, s.profile(t, cookie).Boards)

	board := s.createBoard(t, cookie, "  trimmed  ")
	assert.Equal(t, "trimmed", board.Name)
}
