package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TaiefArnob/InstaVista/internal/app/model"
)

// PostStore persists post documents and resolves them into views.
type PostStore struct {
	col      *mongo.Collection
	users    *UserStore
	comments *CommentStore
}

// NewPostStore returns a PostStore over the posts collection. User and
// comment stores are needed to resolve references into views.
func NewPostStore(mdb *mongo.Database, users *UserStore, comments *CommentStore) *PostStore {
	return &PostStore{
		col:      mdb.Collection("posts"),
		users:    users,
		comments: comments,
	}
}

// Create inserts a new post document.
func (s *PostStore) Create(ctx context.Context, author primitive.ObjectID, caption string, images []string) (*model.Post, error) {
	post := &model.Post{
		ID:        primitive.NewObjectID(),
		Caption:   caption,
		Images:    images,
		Author:    author,
		Likes:     []primitive.ObjectID{},
		Comments:  []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetByID fetches a single post document.
func (s *PostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// All lists every post, newest first, with authors and comments resolved.
func (s *PostStore) All(ctx context.Context) ([]model.PostView, error) {
	return s.findViews(ctx, bson.M{})
}

// ByAuthor lists the given user's posts, newest first.
func (s *PostStore) ByAuthor(ctx context.Context, author primitive.ObjectID) ([]model.PostView, error) {
	return s.findViews(ctx, bson.M{"author": author})
}

// ViewsByIDs resolves a set of post references (a user's posts or
// bookmarks) into views, newest first.
func (s *PostStore) ViewsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.PostView, error) {
	if len(ids) == 0 {
		return []model.PostView{}, nil
	}
	return s.findViews(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// findViews runs the filtered query and attaches author summaries and
// resolved comments to each post.
func (s *PostStore) findViews(ctx context.Context, filter bson.M) ([]model.PostView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return []model.PostView{}, nil
	}

	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	seen := make(map[primitive.ObjectID]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.Author]; !ok {
			seen[p.Author] = struct{}{}
			authorIDs = append(authorIDs, p.Author)
		}
	}

	authors, err := s.users.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.PostView, 0, len(posts))
	for _, p := range posts {
		comments, err := s.comments.ViewsByPost(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		views = append(views, model.PostView{
			ID:        p.ID,
			Caption:   p.Caption,
			Images:    p.Images,
			Author:    authors[p.Author],
			Likes:     p.Likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
		})
	}

	return views, nil
}

// Like adds the user to the post's like set. $addToSet keeps repeat likes
// idempotent.
func (s *PostStore) Like(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$addToSet": bson.M{"likes": userID}})
	return err
}

// Unlike removes the user from the post's like set.
func (s *PostStore) Unlike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

// AddCommentRef appends a comment reference to the post.
func (s *PostStore) AddCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"comments": commentID}})
	return err
}

// Delete removes the post document.
func (s *PostStore) Delete(ctx context.Context, postID primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}
