package handler

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TaiefArnob/InstaVista/internal/app/realtime"
	"github.com/TaiefArnob/InstaVista/internal/app/storage"
	"github.com/TaiefArnob/InstaVista/internal/app/store"
	"github.com/TaiefArnob/InstaVista/internal/configs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/auth/jwt"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/randx"

	"github.com/go-chi/chi/v5"
)

type AppDeps struct {
	Gateway        *realtime.Gateway
	Config         *configs.AppConfig
	StorageService storage.StorageService
	Users          *store.UserStore
	Posts          *store.PostStore
	Comments       *store.CommentStore
	Messages       *store.MessageStore
}

// objectIDParam parses the named URL parameter as a Mongo ObjectID.
func objectIDParam(r *http.Request, name string) (primitive.ObjectID, *errs.CustomError) {
	raw := chi.URLParam(r, name)
	if !randx.IsValidObjectIDHex(raw) {
		return primitive.NilObjectID, errs.NewError(errs.ErrInvalidParams)
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errs.NewError(errs.ErrInvalidParams)
	}

	return id, nil
}

// callerID resolves the authenticated caller's account ID from the request
// context. RequireAuth guarantees a payload on gated routes; a malformed
// or missing one still maps to an unauthorized error.
func callerID(r *http.Request) (primitive.ObjectID, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return primitive.NilObjectID, errs.NewError(errs.ErrUnauthorized)
	}

	id, err := primitive.ObjectIDFromHex(payload.UserID)
	if err != nil {
		return primitive.NilObjectID, errs.NewError(errs.ErrUnauthorized)
	}

	return id, nil
}
