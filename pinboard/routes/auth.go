// pinboard/routes/auth.go
package routes

import (
	"net/http"
	"strings"
	"time"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/services/auth"
	"pinboard/pinboard/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// AuthRoutes registers /register, /login and /logout. Register and login are
// rate limited per client IP when rateLimit > 0.
func AuthRoutes(ctrl *controllers.AuthController, cookie auth.CookieOptions, maxUpload int64, rateLimit int) func(chi.Router) {
	return func(r chi.Router) {
		r.Group(func(gr chi.Router) {
			if rateLimit > 0 {
				gr.Use(httprate.Limit(
					rateLimit,
					1*time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
					httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
						writeJSON(w, http.StatusTooManyRequests, types.MessageResponse{Success: false, Message: "Too many requests"})
					}),
				))
			}

			gr.Post("/register", func(w http.ResponseWriter, r *http.Request) {
				if err := parseForm(w, r, maxUpload); err != nil {
					writeError(w, r, err)
					return
				}
				req := types.RegisterRequest{
					Username: strings.TrimSpace(r.FormValue("username")),
					Email:    strings.TrimSpace(r.FormValue("email")),
					Password: r.FormValue("password"),
				}
				if err := types.Validate(req); err != nil {
					writeError(w, r, err)
					return
				}
				image, file, err := readImage(r, "image")
				if err != nil {
					writeError(w, r, err)
					return
				}
				defer closeFile(file)

				session, err := ctrl.Register(r.Context(), req, image)
				if err != nil {
					writeError(w, r, err)
					return
				}
				auth.SetTokenCookie(w, cookie, session.Token, session.Expires)
				writeJSON(w, http.StatusCreated, types.UserResponse{
					Success: true,
					Message: "User registered successfully",
					User:    session.User,
				})
			})

			gr.Post("/login", func(w http.ResponseWriter, r *http.Request) {
				var req types.LoginRequest
				if err := decodeJSON(r, &req); err != nil {
					writeError(w, r, err)
					return
				}
				session, err := ctrl.Login(r.Context(), req)
				if err != nil {
					writeError(w, r, err)
					return
				}
				auth.SetTokenCookie(w, cookie, session.Token, session.Expires)
				writeJSON(w, http.StatusOK, types.UserResponse{
					Success: true,
					Message: "Login successful",
					User:    session.User,
				})
			})
		})

		logout := func(w http.ResponseWriter, r *http.Request) {
			auth.ClearTokenCookie(w, cookie)
			writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Logged out successfully"})
		}
		r.Get("/logout", logout)
		r.Post("/logout", logout)
	}
}
