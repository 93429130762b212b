/*
Package model defines the documents stored in MongoDB and the view types
the API serializes to clients.

ObjectID fields marshal to their hex form in JSON, which keeps the wire
format identical to what the frontend expects from a document store.
*/
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the account document.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	ProfilePicture string               `bson:"profilePicture" json:"profilePicture"`
	Bio            string               `bson:"bio" json:"bio"`
	Gender         string               `bson:"gender" json:"gender,omitempty"`
	Followers      []primitive.ObjectID `bson:"followers" json:"followers"`
	Following      []primitive.ObjectID `bson:"following" json:"following"`
	Posts          []primitive.ObjectID `bson:"posts" json:"posts"`
	Bookmarks      []primitive.ObjectID `bson:"bookmarks" json:"bookmarks"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the slim author representation attached to posts,
// comments, and notifications.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Username       string             `bson:"username" json:"username"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
}

// Summary reduces a full user document to its public summary.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserProfile is the profile page view: the account with its posts and
// bookmarked posts resolved to full documents.
type UserProfile struct {
	ID             primitive.ObjectID   `json:"_id"`
	Username       string               `json:"username"`
	Email          string               `json:"email"`
	ProfilePicture string               `json:"profilePicture"`
	Bio            string               `json:"bio"`
	Gender         string               `json:"gender,omitempty"`
	Followers      []primitive.ObjectID `json:"followers"`
	Following      []primitive.ObjectID `json:"following"`
	Posts          []PostView           `json:"posts"`
	Bookmarks      []PostView           `json:"bookmarks"`
}
