/*
Package handler provides the HTTP handlers and routing setup for the
InstaVista server.

This file defines the main Router, applying necessary middleware like
logging, CORS, and IP-based rate limiting before delegating requests to
specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/TaiefArnob/InstaVista/internal/pkg/auth/jwt"
	"github.com/TaiefArnob/InstaVista/internal/pkg/limiter"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

const (
	AuthRate  = 0.2
	AuthBurst = 5
	WsRate    = 0.5
	WsBurst   = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the
// application. It initializes IP-based rate limiters, configures CORS, and
// applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	wsLimiter := limiter.NewIPRateLimiter(rate.Limit(WsRate), WsBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "InstaVista Server",
		}
		resp.RespondSuccess(w, r, "Healthy.", data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/user", func(user chi.Router) {
			user.With(authLimiter.Middleware).Post("/register", HandleRegister(deps))
			user.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
			user.Get("/logout", HandleLogout(deps))

			user.Group(func(auth chi.Router) {
				auth.Use(jwt.RequireAuth)

				auth.Get("/{id}/profile", HandleGetProfile(deps))
				auth.Put("/profile/edit", HandleEditProfile(deps))
				auth.Get("/suggested", HandleSuggestedUsers(deps))
				auth.Post("/followOrunfollow/{id}", HandleFollowOrUnfollow(deps))
			})
		})

		api.Route("/post", func(post chi.Router) {
			post.Use(jwt.RequireAuth)

			post.Post("/addpost", HandleAddPost(deps))
			post.Get("/all", HandleGetAllPosts(deps))
			post.Get("/userpost/all", HandleGetUserPosts(deps))
			post.Post("/{id}/like", HandleLikePost(deps))
			post.Post("/{id}/dislike", HandleDislikePost(deps))
			post.Post("/{id}/comment", HandleAddComment(deps))
			post.Get("/{id}/comments/all", HandleGetComments(deps))
			post.Delete("/delete/{id}", HandleDeletePost(deps))
			post.Get("/{id}/bookmark", HandleBookmarkPost(deps))
		})

		api.Route("/message", func(message chi.Router) {
			message.Use(jwt.RequireAuth)

			message.Post("/send/{id}", HandleSendMessage(deps))
			message.Get("/all/{id}", HandleGetMessages(deps))
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, wsLimiter, deps))

	return r
}
