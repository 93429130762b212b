/*
Package handler provides HTTP handler functions for user profiles and the
social graph.
*/
package handler

import (
	"net/http"

	"github.com/TaiefArnob/InstaVista/internal/app/db"
	"github.com/TaiefArnob/InstaVista/internal/app/model"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/req"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

// HandleGetProfile returns a user's profile with posts and bookmarks
// resolved to full post views.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Users.GetByID(r.Context(), userID)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "get_profile: user fetch failed", "user_id", userID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		posts, err := deps.Posts.ViewsByIDs(r.Context(), user.Posts)
		if err != nil {
			logx.Error(err, "get_profile: post resolution failed", "user_id", userID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		bookmarks, err := deps.Posts.ViewsByIDs(r.Context(), user.Bookmarks)
		if err != nil {
			logx.Error(err, "get_profile: bookmark resolution failed", "user_id", userID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		profile := model.UserProfile{
			ID:             user.ID,
			Username:       user.Username,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			Bio:            user.Bio,
			Gender:         user.Gender,
			Followers:      user.Followers,
			Following:      user.Following,
			Posts:          posts,
			Bookmarks:      bookmarks,
		}

		resp.RespondSuccess(w, r, "Profile fetched.", map[string]any{"user": profile})
	}
}

// HandleEditProfile updates the caller's bio, gender, and profile picture.
// The picture arrives as a multipart file and goes through the image
// pipeline before the document is touched.
func HandleEditProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		bio := r.FormValue("bio")
		gender := r.FormValue("gender")

		oldPictureURL := ""
		pictureURL := ""
		if headers := r.MultipartForm.File["profilePicture"]; len(headers) > 0 {
			if current, err := deps.Users.GetByID(r.Context(), userID); err == nil {
				oldPictureURL = current.ProfilePicture
			}

			url, customErr := storeImage(r, deps, headers[0], "avatars")
			if customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
			pictureURL = url
		}

		user, err := deps.Users.UpdateProfile(r.Context(), userID, bio, gender, pictureURL)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "edit_profile: update failed", "user_id", userID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		// The replaced avatar object has no remaining reference.
		if pictureURL != "" && oldPictureURL != "" && oldPictureURL != pictureURL {
			deleteStoredImages(deps, oldPictureURL)
		}

		resp.RespondSuccess(w, r, "Profile updated successfully.", map[string]any{"user": user})
	}
}

// HandleSuggestedUsers lists every account except the caller's.
func HandleSuggestedUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		users, err := deps.Users.Suggested(r.Context(), userID)
		if err != nil {
			logx.Error(err, "suggested_users: query failed", "user_id", userID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if len(users) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoSuggestedUsers))
			return
		}

		resp.RespondSuccess(w, r, "Suggested users fetched.", map[string]any{"users": users})
	}
}

// HandleFollowOrUnfollow toggles the follow relationship between the caller
// and the target user, updating both sides of the graph.
func HandleFollowOrUnfollow(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		targetID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if followerID == targetID {
			resp.RespondError(w, r, errs.NewError(errs.ErrSelfFollow))
			return
		}

		follower, err := deps.Users.GetByID(r.Context(), followerID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		if _, err := deps.Users.GetByID(r.Context(), targetID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		isFollowing := false
		for _, id := range follower.Following {
			if id == targetID {
				isFollowing = true
				break
			}
		}

		if isFollowing {
			if err := deps.Users.Unfollow(r.Context(), followerID, targetID); err != nil {
				logx.Error(err, "unfollow failed", "follower", followerID.Hex(), "target", targetID.Hex())
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			resp.RespondSuccess(w, r, "Unfollowed successfully.", nil)
			return
		}

		if err := deps.Users.Follow(r.Context(), followerID, targetID); err != nil {
			logx.Error(err, "follow failed", "follower", followerID.Hex(), "target", targetID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, "Followed successfully.", nil)
	}
}
