package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is the stored post document. Author and comments are references,
// resolved into view types when serving list endpoints.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Caption   string               `bson:"caption" json:"caption"`
	Images    []string             `bson:"images" json:"images"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// PostView is a post with its author and comments resolved.
type PostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	Caption   string               `json:"caption"`
	Images    []string             `json:"images"`
	Author    UserSummary          `json:"author"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
}

// Comment is the stored comment document.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text      string             `bson:"text" json:"text"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Post      primitive.ObjectID `bson:"post" json:"post"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	Text      string             `json:"text"`
	Author    UserSummary        `json:"author"`
	CreatedAt time.Time          `json:"createdAt"`
}
