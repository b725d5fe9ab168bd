package saved

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidshare/models"
	"vidshare/store"
)

func TestResolveNumericID(t *testing.T) {
	videos := store.NewMemory().Videos()

	snap := Resolve(context.Background(), videos, VideoRef{ID: "42"})
	require.NotNil(t, snap.VideoID)
	assert.Equal(t, int64(42), *snap.VideoID)
	assert.Empty(t, snap.ObjectID)
}

func TestResolveStringID(t *testing.T) {
	videos := store.NewMemory().Videos()

	snap := Resolve(context.Background(), videos, VideoRef{ID: "abc"})
	assert.Nil(t, snap.VideoID)
	assert.Equal(t, "abc", snap.ObjectID)
}

func TestResolveBackfillsObjectID(t *testing.T) {
	m := store.NewMemory()
	canonical := models.Video{VideoID: 42, Title: "canonical", URL: "http://v/42"}
	require.NoError(t, m.Videos().Insert(context.Background(), &canonical))

	snap := Resolve(context.Background(), m.Videos(), VideoRef{VideoID: float64(42)})
	require.NotNil(t, snap.VideoID)
	assert.Equal(t, int64(42), *snap.VideoID)
	assert.Equal(t, canonical.ID.Hex(), snap.ObjectID)
}

func TestResolveBackfillReplacesNullString(t *testing.T) {
	m := store.NewMemory()
	canonical := models.Video{VideoID: 7}
	require.NoError(t, m.Videos().Insert(context.Background(), &canonical))

	snap := Resolve(context.Background(), m.Videos(), VideoRef{VideoID: float64(7), ObjectID: "null"})
	assert.Equal(t, canonical.ID.Hex(), snap.ObjectID)
}

func TestResolveMissingCanonicalVideo(t *testing.T) {
	videos := store.NewMemory().Videos()

	snap := Resolve(context.Background(), videos, VideoRef{VideoID: float64(99), URL: "http://v/99"})
	require.NotNil(t, snap.VideoID)
	assert.Equal(t, int64(99), *snap.VideoID)
	assert.Empty(t, snap.ObjectID, "lookup miss leaves identity as-is")
	assert.Equal(t, "http://v/99", snap.URL)
}

func TestResolveExplicitIDsWinOverGenericID(t *testing.T) {
	videos := store.NewMemory().Videos()

	snap := Resolve(context.Background(), videos, VideoRef{ID: "abc", ObjectID: "real-oid"})
	assert.Equal(t, "real-oid", snap.ObjectID, "generic id is ignored when _id is present")
	assert.Nil(t, snap.VideoID)
}

func TestResolveStringifiesObjectID(t *testing.T) {
	videos := store.NewMemory().Videos()

	snap := Resolve(context.Background(), videos, VideoRef{ObjectID: float64(123)})
	assert.Equal(t, "123", snap.ObjectID)
}

func TestResolveCopiesSnapshotFields(t *testing.T) {
	videos := store.NewMemory().Videos()

	snap := Resolve(context.Background(), videos, VideoRef{
		ID:          "abc",
		Title:       "t",
		Description: "d",
		URL:         "http://x",
		Likes:       "5",
		Views:       float64(100),
		CategoryID:  "2",
	})
	assert.Equal(t, "t", snap.Title)
	assert.Equal(t, "d", snap.Description)
	assert.Equal(t, "http://x", snap.URL)
	assert.Equal(t, int64(5), snap.Likes)
	assert.Equal(t, int64(100), snap.Views)
	assert.Equal(t, int64(2), snap.CategoryID)
}

func TestDedupKeyPriority(t *testing.T) {
	vid := int64(7)

	field, value := dedupKey(models.VideoSnapshot{VideoID: &vid, ObjectID: "oid", URL: "http://x"})
	assert.Equal(t, "video_id", field)
	assert.Equal(t, vid, value)

	field, value = dedupKey(models.VideoSnapshot{ObjectID: "oid", URL: "http://x"})
	assert.Equal(t, "_id", field)
	assert.Equal(t, "oid", value)

	field, value = dedupKey(models.VideoSnapshot{URL: "http://x"})
	assert.Equal(t, "url", field)
	assert.Equal(t, "http://x", value)

	field, _ = dedupKey(models.VideoSnapshot{Title: "no identity at all"})
	assert.Equal(t, "", field)
}
