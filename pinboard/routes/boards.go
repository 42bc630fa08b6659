package routes

import (
	"net/http"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/types"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func BoardRoutes(ctrl *controllers.BoardController, authMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Boards are shareable by link, so a single board is public.
	r.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		boardID, err := uuidParam(r, "id")
		if err != nil {
			return nil, 0, err
		}
		board, err := ctrl.GetBoard(r.Context(), boardID)
		if err != nil {
			return nil, 0, err
		}
		return types.BoardResponse{Success: true, Board: board}, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(authMW)

		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			var req types.CreateBoardRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			board, err := ctrl.CreateBoard(r.Context(), caller, req)
			if err != nil {
				return nil, 0, err
			}
			return types.BoardResponse{Success: true, Board: board}, http.StatusCreated, nil
		}))

		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			boards, err := ctrl.ListBoardsByUser(r.Context(), caller)
			if err != nil {
				return nil, 0, err
			}
			return types.BoardsResponse{Success: true, Boards: boards}, http.StatusOK, nil
		}))

		gr.Get("/user/{userId}", handleJSON(func(r *http.Request) (any, int, error) {
			userID, err := uuidParam(r, "userId")
			if err != nil {
				return nil, 0, err
			}
			boards, err := ctrl.ListBoardsByUser(r.Context(), userID)
			if err != nil {
				return nil, 0, err
			}
			return types.BoardsResponse{Success: true, Boards: boards}, http.StatusOK, nil
		}))

		gr.Post("/{id}/save", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			boardID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			var req types.SavePostRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			added, err := ctrl.SavePost(r.Context(), caller, boardID, uuid.MustParse(req.PostID))
			if err != nil {
				return nil, 0, err
			}
			msg := "Post saved to board!"
			if !added {
				msg = "Post already saved to board"
			}
			return types.MessageResponse{Success: true, Message: msg}, http.StatusOK, nil
		}))

		gr.Delete("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			boardID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			if err := ctrl.DeleteBoard(r.Context(), caller, boardID); err != nil {
				return nil, 0, err
			}
			return types.MessageResponse{Success: true, Message: "Board deleted successfully"}, http.StatusOK, nil
		}))

		gr.Delete("/{id}/posts/{postId}", handleJSON(func(r *http.Request) (any, int, error) {
			caller, err := callerID(r)
			if err != nil {
				return nil, 0, err
			}
			boardID, err := uuidParam(r, "id")
			if err != nil {
				return nil, 0, err
			}
			postID, err := uuidParam(r, "postId")
			if err != nil {
				return nil, 0, err
			}
			if err := ctrl.RemovePost(r.Context(), caller, boardID, postID); err != nil {
				return nil, 0, err
			}
			return types.MessageResponse{Success: true}, http.StatusOK, nil
		}))
	})
	return r
}
