/*
Package store implements the MongoDB repositories for users, posts,
comments, and direct messages.

Each store holds the database handle and performs simple document queries;
cross-collection resolution (attaching author summaries to posts and
comments) happens here so handlers stay free of driver details.
*/
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

// UserStore persists account documents.
type UserStore struct {
	col *mongo.Collection
}

// NewUserStore returns a UserStore over the users collection.
func NewUserStore(mdb *mongo.Database) *UserStore {
	return &UserStore{col: mdb.Collection("users")}
}

// Create inserts a new account. The unique email index surfaces duplicates
// as a duplicate key error.
func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		Posts:     []primitive.ObjectID{},
		Bookmarks: []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByEmail fetches the account registered under the given email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID fetches an account by its ObjectID.
func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetSummary fetches the public summary of a single account.
func (s *UserStore) GetSummary(ctx context.Context, id primitive.ObjectID) (*model.UserSummary, error) {
	var summary model.UserSummary

	opts := options.FindOne().SetProjection(bson.M{"username": 1, "profilePicture": 1})
	if err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// GetSummaries resolves a set of account IDs to their summaries in one
// query. Missing IDs are simply absent from the result map.
func (s *UserStore) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error) {
	result := make(map[primitive.ObjectID]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"username": 1, "profilePicture": 1})
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var summary model.UserSummary
		if err := cursor.Decode(&summary); err != nil {
			return nil, err
		}
		result[summary.ID] = summary
	}

	return result, cursor.Err()
}

// Suggested lists every account except the given one, passwords excluded.
func (s *UserStore) Suggested(ctx context.Context, exclude primitive.ObjectID) ([]model.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$ne": exclude}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateProfile applies the non-empty profile fields and returns the
// updated document.
func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, bio, gender, profilePicture string) (*model.User, error) {
	set := bson.M{}
	if bio != "" {
		set["bio"] = bio
	}
	if gender != "" {
		set["gender"] = gender
	}
	if profilePicture != "" {
		set["profilePicture"] = profilePicture
	}

	// An empty $set is rejected by the server.
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	after := options.After
	opts := &options.FindOneAndUpdateOptions{ReturnDocument: &after}

	var user model.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Follow records follower -> target on both documents.
func (s *UserStore) Follow(ctx context.Context, follower, target primitive.ObjectID) error {
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": follower}, bson.M{"$addToSet": bson.M{"following": target}}); err != nil {
		return err
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": target}, bson.M{"$addToSet": bson.M{"followers": follower}})
	return err
}

// Unfollow removes follower -> target from both documents.
func (s *UserStore) Unfollow(ctx context.Context, follower, target primitive.ObjectID) error {
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": follower}, bson.M{"$pull": bson.M{"following": target}}); err != nil {
		return err
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": target}, bson.M{"$pull": bson.M{"followers": follower}})
	return err
}

// AddPostRef appends a post reference to the author's posts array.
func (s *UserStore) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{"posts": postID}})
	return err
}

// RemovePostRef drops a post reference from the author's posts array.
func (s *UserStore) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"posts": postID}})
	return err
}

// AddBookmark adds a post to the user's bookmark set.
func (s *UserStore) AddBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{"bookmarks": postID}})
	return err
}

// RemoveBookmark removes a post from the user's bookmark set.
func (s *UserStore) RemoveBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"bookmarks": postID}})
	return err
}
