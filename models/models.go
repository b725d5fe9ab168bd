package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account created through registration. Identity fields are
// immutable after creation and no exposed operation deletes a user.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID   string             `bson:"user_id" json:"user_id"`
	UserName string             `bson:"user_name" json:"user_name"`
	Password string             `bson:"password" json:"-"`
	Email    string             `bson:"email" json:"email"`
	Mobile   string             `bson:"mobile" json:"mobile"`
	// Saved is a legacy embedded list kept for older records; the live
	// saved-videos path is the tblsaved collection.
	Saved []SavedItem `bson:"saved" json:"saved"`
}

// SavedItem is the legacy embedded saved-video shape on User.
type SavedItem struct {
	ID          any    `bson:"id,omitempty" json:"id,omitempty"`
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Likes       int64  `bson:"likes" json:"likes"`
	Views       int64  `bson:"views" json:"views"`
}

type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AdminID  string             `bson:"admin_id" json:"admin_id"`
	Password string             `bson:"password" json:"-"`
}

type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CategoryID   int64              `bson:"category_id" json:"category_id"`
	CategoryName string             `bson:"category_name" json:"category_name"`
}

// Video is the canonical video record. VideoID is unique by convention,
// not enforced by the store.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VideoID     int64              `bson:"video_id" json:"video_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Comments    string             `bson:"comments,omitempty" json:"comments,omitempty"`
	URL         string             `bson:"url" json:"url"`
	Likes       int64              `bson:"likes" json:"likes"`
	Views       int64              `bson:"views" json:"views"`
	CategoryID  int64              `bson:"category_id" json:"category_id"`
}

// SavedEntry links a user to a by-value snapshot of a video. Editing the
// canonical video later does not rewrite existing snapshots.
type SavedEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Video     VideoSnapshot      `bson:"video" json:"video"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// VideoSnapshot is the denormalized video inside a SavedEntry. ObjectID is
// the canonical video's store id as a string when it could be resolved,
// empty otherwise. VideoID is nil when the reference carried no numeric id.
type VideoSnapshot struct {
	ObjectID    string `bson:"_id" json:"_id"`
	VideoID     *int64 `bson:"video_id" json:"video_id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	URL         string `bson:"url" json:"url"`
	Likes       int64  `bson:"likes" json:"likes"`
	Views       int64  `bson:"views" json:"views"`
	CategoryID  int64  `bson:"category_id" json:"category_id"`
}
