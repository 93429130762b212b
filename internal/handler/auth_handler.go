/*
Package handler provides HTTP handler functions for account registration
and session management.
*/
package handler

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/TaiefArnob/InstaVista/internal/app/db"
	"github.com/TaiefArnob/InstaVista/internal/pkg/auth/jwt"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/req"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account from username, email, and password.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Username = strings.TrimSpace(input.Username)
		input.Email = strings.TrimSpace(input.Email)

		if input.Username == "" || input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if _, err := deps.Users.Create(r.Context(), input.Username, input.Email, string(hashedPassword)); err != nil {
			if db.IsDuplicateKey(err) {
				logx.Warn("registration conflict: email already registered", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user document")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondStatus(w, r, http.StatusCreated, "Account created successfully.", nil)
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials, sets the session cookie, and returns
// the account with its posts resolved.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields))
			return
		}

		user, err := deps.Users.GetByEmail(r.Context(), input.Email)
		if err != nil {
			if !db.IsNotFound(err) {
				logx.Error(err, "login: user fetch failed", "email", input.Email)
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := jwt.GenerateToken(&jwt.Payload{UserID: user.ID.Hex()}, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "login: token generation failed", "user_id", user.ID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		posts, err := deps.Posts.ByAuthor(r.Context(), user.ID)
		if err != nil {
			logx.Error(err, "login: post resolution failed", "user_id", user.ID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		jwt.SetSessionCookie(w, token)

		resp.RespondSuccess(w, r, fmt.Sprintf("Welcome back, %s", user.Username), map[string]any{
			"user": map[string]any{
				"_id":            user.ID,
				"username":       user.Username,
				"email":          user.Email,
				"profilePicture": user.ProfilePicture,
				"bio":            user.Bio,
				"followers":      user.Followers,
				"following":      user.Following,
				"posts":          posts,
			},
		})
	}
}

// HandleLogout clears the session cookie.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jwt.ClearSessionCookie(w)
		resp.RespondSuccess(w, r, "Logged out successfully.", nil)
	}
}
