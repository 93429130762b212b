/*
Package handler provides HTTP handler functions for posts, likes,
comments, and bookmarks.
*/
package handler

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TaiefArnob/InstaVista/internal/app/model"
	"github.com/TaiefArnob/InstaVista/internal/app/realtime"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/req"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

// MaxPostImages caps the number of images per post.
const MaxPostImages = 5

// HandleAddPost creates a post from a multipart form with a caption and up
// to MaxPostImages images. Each image runs through the normalization
// pipeline and is uploaded before the document is written.
func HandleAddPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		caption := r.FormValue("caption")

		headers := r.MultipartForm.File["images"]
		if len(headers) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrImageRequired))
			return
		}
		if len(headers) > MaxPostImages {
			resp.RespondError(w, r, errs.NewError(errs.ErrTooManyImages, MaxPostImages))
			return
		}

		imageURLs := make([]string, 0, len(headers))
		for _, header := range headers {
			url, customErr := storeImage(r, deps, header, "posts")
			if customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
			imageURLs = append(imageURLs, url)
		}

		post, err := deps.Posts.Create(r.Context(), authorID, caption, imageURLs)
		if err != nil {
			logx.Error(err, "add_post: insert failed", "author", authorID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.AddPostRef(r.Context(), authorID, post.ID); err != nil {
			logx.Error(err, "add_post: author post ref update failed", "post_id", post.ID.Hex())
		}

		author, err := deps.Users.GetSummary(r.Context(), authorID)
		if err != nil {
			logx.Error(err, "add_post: author resolution failed", "author", authorID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		view := model.PostView{
			ID:        post.ID,
			Caption:   post.Caption,
			Images:    post.Images,
			Author:    *author,
			Likes:     post.Likes,
			Comments:  []model.CommentView{},
			CreatedAt: post.CreatedAt,
		}

		resp.RespondStatus(w, r, http.StatusCreated, "Post created successfully.", map[string]any{"post": view})
	}
}

// HandleGetAllPosts lists every post, newest first.
func HandleGetAllPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := deps.Posts.All(r.Context())
		if err != nil {
			logx.Error(err, "get_all_posts: query failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if len(posts) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoPostsFound))
			return
		}

		resp.RespondSuccess(w, r, "Posts fetched.", map[string]any{"posts": posts})
	}
}

// HandleGetUserPosts lists the caller's own posts, newest first.
func HandleGetUserPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		posts, err := deps.Posts.ByAuthor(r.Context(), authorID)
		if err != nil {
			logx.Error(err, "get_user_posts: query failed", "author", authorID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if len(posts) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoPostsFound))
			return
		}

		resp.RespondSuccess(w, r, "Posts fetched.", map[string]any{"posts": posts})
	}
}

// HandleLikePost adds the caller to the post's like set and, once the
// write has committed, pushes a notification to the post owner.
func HandleLikePost(deps *AppDeps) http.HandlerFunc {
	return handleReaction(deps, "like")
}

// HandleDislikePost removes the caller from the post's like set and, once
// the write has committed, pushes a notification to the post owner.
func HandleDislikePost(deps *AppDeps) http.HandlerFunc {
	return handleReaction(deps, "dislike")
}

// handleReaction implements like and dislike. Both are idempotent set
// mutations followed by a best-effort notification. The event goes out
// only after the store write succeeds, and never to the actor themselves.
func handleReaction(deps *AppDeps, reaction string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.Posts.GetByID(r.Context(), postID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
			return
		}

		if reaction == "like" {
			err = deps.Posts.Like(r.Context(), postID, actorID)
		} else {
			err = deps.Posts.Unlike(r.Context(), postID, actorID)
		}
		if err != nil {
			logx.Error(err, "reaction: like set update failed", "post_id", postID.Hex(), "reaction", reaction)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		notifyPostOwner(r, deps, post, actorID, reaction)

		if reaction == "like" {
			resp.RespondSuccess(w, r, "Post liked.", nil)
		} else {
			resp.RespondSuccess(w, r, "Post disliked.", nil)
		}
	}
}

// notifyPostOwner pushes a reaction notification to the post owner's live
// connection. Self-reactions and offline owners produce no event; a failed
// author lookup is logged and swallowed because the reaction itself has
// already been persisted.
func notifyPostOwner(r *http.Request, deps *AppDeps, post *model.Post, actorID primitive.ObjectID, reaction string) {
	if post.Author == actorID {
		return
	}

	actor, err := deps.Users.GetSummary(r.Context(), actorID)
	if err != nil {
		logx.Error(err, "reaction: actor resolution failed, skipping notification", "actor", actorID.Hex())
		return
	}

	message := "Your post was liked"
	if reaction == "dislike" {
		message = "Your post was disliked"
	}

	deps.Gateway.Notify(post.Author.Hex(), realtime.EventNotification, realtime.Notification{
		Type:        reaction,
		UserID:      actorID,
		UserDetails: *actor,
		PostID:      post.ID,
		Message:     message,
	})
}

type CommentInput struct {
	Text string `json:"text"`
}

// HandleAddComment attaches a comment to a post.
func HandleAddComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Text) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrCommentTextRequired))
			return
		}

		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
			return
		}

		comment, err := deps.Comments.Create(r.Context(), postID, authorID, input.Text)
		if err != nil {
			logx.Error(err, "add_comment: insert failed", "post_id", postID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Posts.AddCommentRef(r.Context(), postID, comment.ID); err != nil {
			logx.Error(err, "add_comment: post comment ref update failed", "comment_id", comment.ID.Hex())
		}

		resp.RespondStatus(w, r, http.StatusCreated, "Comment added successfully.", map[string]any{"comment": comment})
	}
}

// HandleGetComments lists a post's comments, newest first.
func HandleGetComments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		comments, err := deps.Comments.ViewsByPost(r.Context(), postID)
		if err != nil {
			logx.Error(err, "get_comments: query failed", "post_id", postID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if len(comments) == 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoCommentsFound))
			return
		}

		resp.RespondSuccess(w, r, "Comments fetched.", map[string]any{"comments": comments})
	}
}

// HandleDeletePost removes a post, its comments, and the author's post
// reference. Only the author may delete.
func HandleDeletePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		post, err := deps.Posts.GetByID(r.Context(), postID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
			return
		}

		if post.Author != userID {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotPostAuthor))
			return
		}

		if err := deps.Posts.Delete(r.Context(), postID); err != nil {
			logx.Error(err, "delete_post: delete failed", "post_id", postID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.RemovePostRef(r.Context(), userID, postID); err != nil {
			logx.Error(err, "delete_post: author post ref cleanup failed", "post_id", postID.Hex())
		}

		if err := deps.Comments.DeleteByPost(r.Context(), postID); err != nil {
			logx.Error(err, "delete_post: comment cascade failed", "post_id", postID.Hex())
		}

		deleteStoredImages(deps, post.Images...)

		resp.RespondSuccess(w, r, "Post deleted.", nil)
	}
}

// HandleBookmarkPost toggles the post on the caller's bookmark set.
func HandleBookmarkPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, customErr := callerID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID, customErr := objectIDParam(r, "id")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
			return
		}

		user, err := deps.Users.GetByID(r.Context(), userID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		bookmarked := false
		for _, id := range user.Bookmarks {
			if id == postID {
				bookmarked = true
				break
			}
		}

		if bookmarked {
			if err := deps.Users.RemoveBookmark(r.Context(), userID, postID); err != nil {
				logx.Error(err, "bookmark: removal failed", "post_id", postID.Hex())
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			resp.RespondSuccess(w, r, "Post removed from bookmarks.", map[string]any{"type": "Unsaved"})
			return
		}

		if err := deps.Users.AddBookmark(r.Context(), userID, postID); err != nil {
			logx.Error(err, "bookmark: add failed", "post_id", postID.Hex())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, "Post bookmarked.", map[string]any{"type": "Saved"})
	}
}
