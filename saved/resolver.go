package saved

import (
	"context"
	"errors"
	"log"

	"vidshare/coerce"
	"vidshare/models"
	"vidshare/store"
)

// VideoRef is the free-form video reference accepted by the save endpoint.
// Clients send identity under any of id, video_id or _id, in whatever JSON
// type they have on hand.
type VideoRef struct {
	ID          any    `json:"id"`
	ObjectID    any    `json:"_id"`
	VideoID     any    `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Likes       any    `json:"likes"`
	Views       any    `json:"views"`
	CategoryID  any    `json:"category_id"`
}

// Resolve normalizes a reference to a snapshot with a best-effort canonical
// identity:
//
//  1. A bare id with neither video_id nor _id becomes video_id when it
//     parses as a number, otherwise a string _id. The original id field is
//     discarded.
//  2. A present _id is carried as its string representation; identity keys
//     compare as strings.
//  3. A numeric video_id with no usable _id triggers a lookup of the
//     canonical video to backfill _id with its store id.
//
// Resolution never fails the caller: a missing canonical video leaves the
// identity as-is, and a store error during the lookup is logged and
// likewise ignored.
func Resolve(ctx context.Context, videos store.VideoRepo, ref VideoRef) models.VideoSnapshot {
	snap := models.VideoSnapshot{
		Title:       ref.Title,
		Description: ref.Description,
		URL:         ref.URL,
	}
	if n, ok := coerce.Int64(ref.Likes); ok {
		snap.Likes = n
	}
	if n, ok := coerce.Int64(ref.Views); ok {
		snap.Views = n
	}
	if n, ok := coerce.Int64(ref.CategoryID); ok {
		snap.CategoryID = n
	}

	vid, hasVid := coerce.Int64(ref.VideoID)
	oid, hasOID := coerce.String(ref.ObjectID)

	if ref.VideoID == nil && ref.ObjectID == nil && ref.ID != nil {
		if n, ok := coerce.Int64(ref.ID); ok {
			vid, hasVid = n, true
		} else if s, ok := coerce.String(ref.ID); ok {
			oid, hasOID = s, true
		}
	}

	if hasOID {
		snap.ObjectID = oid
	}
	if hasVid {
		snap.VideoID = &vid
	}

	if hasVid && (snap.ObjectID == "" || snap.ObjectID == "null") {
		v, err := videos.FindByVideoID(ctx, vid)
		switch {
		case err == nil:
			snap.ObjectID = v.ID.Hex()
		case errors.Is(err, store.ErrNotFound):
			// No canonical video; proceed with the identity we have.
		default:
			log.Printf("video lookup failed for video_id %d: %v", vid, err)
		}
	}
	return snap
}

// dedupKey picks the match key for duplicate detection, in strict priority
// order: video_id, then _id, then url. Exactly one key is used; an empty
// field means the reference carried no usable key at all.
func dedupKey(snap models.VideoSnapshot) (field string, value any) {
	switch {
	case snap.VideoID != nil:
		return "video_id", *snap.VideoID
	case snap.ObjectID != "":
		return "_id", snap.ObjectID
	case snap.URL != "":
		return "url", snap.URL
	}
	return "", nil
}
