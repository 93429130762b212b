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

// CommentStore persists comment documents.
type CommentStore struct {
	col   *mongo.Collection
	users *UserStore
}

// NewCommentStore returns a CommentStore over the comments collection.
func NewCommentStore(mdb *mongo.Database, users *UserStore) *CommentStore {
	return &CommentStore{
		col:   mdb.Collection("comments"),
		users: users,
	}
}

// Create inserts a comment and returns it with the author resolved.
func (s *CommentStore) Create(ctx context.Context, postID, author primitive.ObjectID, text string) (*model.CommentView, error) {
	comment := &model.Comment{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Author:    author,
		Post:      postID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, comment); err != nil {
		return nil, err
	}

	summary, err := s.users.GetSummary(ctx, author)
	if err != nil {
		return nil, err
	}

	return &model.CommentView{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    *summary,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// ViewsByPost lists a post's comments, newest first, authors resolved.
func (s *CommentStore) ViewsByPost(ctx context.Context, postID primitive.ObjectID) ([]model.CommentView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"post": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		return []model.CommentView{}, nil
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	seen := make(map[primitive.ObjectID]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.Author]; !ok {
			seen[c.Author] = struct{}{}
			authorIDs = append(authorIDs, c.Author)
		}
	}

	authors, err := s.users.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, model.CommentView{
			ID:        c.ID,
			Text:      c.Text,
			Author:    authors[c.Author],
			CreatedAt: c.CreatedAt,
		})
	}

	return views, nil
}

// DeleteByPost removes every comment belonging to the given post.
func (s *CommentStore) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"post": postID})
	return err
}
