package routes

import (
	"net/http"
	"strings"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/types"

	"github.com/go-chi/chi/v5"
)

// UserRoutes registers the caller-scoped profile endpoints.
func UserRoutes(ctrl *controllers.UserController, authMW func(http.Handler) http.Handler, maxUpload int64) func(chi.Router) {
	return func(r chi.Router) {
		r.Group(func(gr chi.Router) {
			gr.Use(authMW)

			gr.Get("/profile", handleJSON(func(r *http.Request) (any, int, error) {
				id, err := callerID(r)
				if err != nil {
					return nil, 0, err
				}
				user, err := ctrl.GetProfile(r.Context(), id)
				if err != nil {
					return nil, 0, err
				}
				return types.UserResponse{Success: true, User: user}, http.StatusOK, nil
			}))

			update := func(w http.ResponseWriter, r *http.Request) {
				handleJSON(func(r *http.Request) (any, int, error) {
					id, err := callerID(r)
					if err != nil {
						return nil, 0, err
					}
					if err := parseForm(w, r, maxUpload); err != nil {
						return nil, 0, err
					}
					var req types.UpdateProfileRequest
					if name := strings.TrimSpace(r.FormValue("username")); name != "" {
						req.Username = &name
					}
					if err := types.Validate(req); err != nil {
						return nil, 0, err
					}
					image, file, err := readImage(r, "image")
					if err != nil {
						return nil, 0, err
					}
					defer closeFile(file)

					user, err := ctrl.UpdateProfile(r.Context(), id, req, image)
					if err != nil {
						return nil, 0, err
					}
					return types.UserResponse{Success: true, User: user}, http.StatusOK, nil
				})(w, r)
			}
			gr.Put("/profile/update", update)
			gr.Post("/profile/update", update)

			gr.Get("/dashboard", handleJSON(func(r *http.Request) (any, int, error) {
				id, err := callerID(r)
				if err != nil {
					return nil, 0, err
				}
				dash, err := ctrl.Dashboard(r.Context(), id)
				if err != nil {
					return nil, 0, err
				}
				return dash, http.StatusOK, nil
			}))
		})
	}
}
