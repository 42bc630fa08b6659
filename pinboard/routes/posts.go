package routes

import (
	"net/http"
	"strconv"
	"strings"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/types"

	"github.com/go-chi/chi/v5"
)

func PostRoutes(ctrl *controllers.PostController, authMW func(http.Handler) http.Handler, maxUpload int64) chi.Router {
	r := chi.NewRouter()

	// Public feed, newest first.
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		posts, hasMore, err := ctrl.ListPosts(r.Context(), page)
		if err != nil {
			return nil, 0, err
		}
		return types.PostsResponse{Success: true, Posts: posts, Page: page, HasMore: hasMore}, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(authMW)

		gr.Post("/create", func(w http.ResponseWriter, r *http.Request) {
			handleJSON(func(r *http.Request) (any, int, error) {
				id, err := callerID(r)
				if err != nil {
					return nil, 0, err
				}
				if err := parseForm(w, r, maxUpload); err != nil {
					return nil, 0, err
				}
				req := types.CreatePostRequest{
					Title:       strings.TrimSpace(r.FormValue("title")),
					Description: strings.TrimSpace(r.FormValue("description")),
				}
				if err := types.Validate(req); err != nil {
					return nil, 0, err
				}
				image, file, err := readImage(r, "image")
				if err != nil {
					return nil, 0, err
				}
				defer closeFile(file)

				post, err := ctrl.CreatePost(r.Context(), id, req, image)
				if err != nil {
					return nil, 0, err
				}
				return types.PostResponse{Success: true, Post: post}, http.StatusCreated, nil
			})(w, r)
		})

		gr.Get("/user/{userId}", handleJSON(func(r *http.Request) (any, int, error) {
			userID, err := uuidParam(r, "userId")
			if err != nil {
				return nil, 0, err
			}
			posts, err := ctrl.ListPostsByUser(r.Context(), userID)
			if err != nil {
				return nil, 0, err
			}
			return types.PostsResponse{Success: true, Posts: posts}, http.StatusOK, nil
		}))

		gr.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			postID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			post, err := ctrl.GetPost(r.Context(), postID)
			if err != nil {
				return nil, 0, err
			}
			return types.PostResponse{Success: true, Post: post}, http.StatusOK, nil
		}))

		gr.Delete("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			postID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			if err := ctrl.DeletePost(r.Context(), caller, postID); err != nil {
				return nil, 0, err
			}
			return types.MessageResponse{Success: true, Message: "Post deleted"}, http.StatusOK, nil
		}))

		gr.Put("/{id}/like", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			postID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			post, err := ctrl.LikePost(r.Context(), caller, postID)
			if err != nil {
				return nil, 0, err
			}
			return types.PostResponse{Success: true, Post: post}, http.StatusOK, nil
		}))

		gr.Delete("/{id}/like", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			postID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			post, err := ctrl.UnlikePost(r.Context(), caller, postID)
			if err != nil {
				return nil, 0, err
			}
			return types.PostResponse{Success: true, Post: post}, http.StatusOK, nil
		}))
	})
	return r
}
