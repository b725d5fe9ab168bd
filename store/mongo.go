package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidshare/models"
)

// Collection names predate this service and are shared with other tools.
const (
	usersCollection      = "tblusers"
	adminsCollection     = "tbladmins"
	categoriesCollection = "tblcategories"
	videosCollection     = "tblvideos"
	savedCollection      = "tblsaved"
)

// Mongo implements Store on a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping. Callers
// should pass a context with a deadline; boot fails fast on an unreachable
// store.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes backing the duplicate-key checks
// on registration. Safe to call on every boot.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	_, err := m.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	_, err = m.db.Collection(adminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "admin_id", Value: 1}}, Options: unique,
	})
	if err != nil {
		return fmt.Errorf("admin indexes: %w", err)
	}
	return nil
}

func (m *Mongo) Users() UserRepo { return mongoUsers{m.db.Collection(usersCollection)} }

func (m *Mongo) Admins() AdminRepo { return mongoAdmins{m.db.Collection(adminsCollection)} }

func (m *Mongo) Categories() CategoryRepo { return mongoCategories{m.db.Collection(categoriesCollection)} }

func (m *Mongo) Videos() VideoRepo { return mongoVideos{m.db.Collection(videosCollection)} }

func (m *Mongo) Saved() SavedRepo { return mongoSaved{m.db.Collection(savedCollection)} }

func mapMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	default:
		return err
	}
}

// --- users ---

type mongoUsers struct{ coll *mongo.Collection }

func (r mongoUsers) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r mongoUsers) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

func (r mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

func (r mongoUsers) Insert(ctx context.Context, u *models.User) error {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return mapMongoErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// --- admins ---

type mongoAdmins struct{ coll *mongo.Collection }

func (r mongoAdmins) List(ctx context.Context) ([]models.Admin, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	admins := make([]models.Admin, 0)
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r mongoAdmins) FindByAdminID(ctx context.Context, adminID string) (*models.Admin, error) {
	var a models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"admin_id": adminID}).Decode(&a); err != nil {
		return nil, mapMongoErr(err)
	}
	return &a, nil
}

func (r mongoAdmins) Insert(ctx context.Context, a *models.Admin) error {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return mapMongoErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

// --- categories ---

type mongoCategories struct{ coll *mongo.Collection }

func (r mongoCategories) List(ctx context.Context) ([]models.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0)
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// --- videos ---

type mongoVideos struct{ coll *mongo.Collection }

func (r mongoVideos) List(ctx context.Context) ([]models.Video, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	videos := make([]models.Video, 0)
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r mongoVideos) FindByObjectID(ctx context.Context, hexID string) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrNotFound
	}
	var v models.Video
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&v); err != nil {
		return nil, mapMongoErr(err)
	}
	return &v, nil
}

func (r mongoVideos) FindByVideoID(ctx context.Context, videoID int64) (*models.Video, error) {
	var v models.Video
	if err := r.coll.FindOne(ctx, bson.M{"video_id": videoID}).Decode(&v); err != nil {
		return nil, mapMongoErr(err)
	}
	return &v, nil
}

func (r mongoVideos) NextVideoID(ctx context.Context) (int64, error) {
	var v models.Video
	opts := options.FindOne().SetSort(bson.D{{Key: "video_id", Value: -1}})
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return v.VideoID + 1, nil
}

func (r mongoVideos) Insert(ctx context.Context, v *models.Video) error {
	res, err := r.coll.InsertOne(ctx, v)
	if err != nil {
		return mapMongoErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r mongoVideos) UpdateByObjectID(ctx context.Context, hexID string, fields map[string]any) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.update(ctx, bson.M{"_id": oid}, fields)
}

func (r mongoVideos) UpdateByVideoID(ctx context.Context, videoID int64, fields map[string]any) (*models.Video, error) {
	return r.update(ctx, bson.M{"video_id": videoID}, fields)
}

func (r mongoVideos) update(ctx context.Context, filter bson.M, fields map[string]any) (*models.Video, error) {
	var v models.Video
	if len(fields) == 0 {
		// Mongo rejects an empty $set; an empty update is a read.
		if err := r.coll.FindOne(ctx, filter).Decode(&v); err != nil {
			return nil, mapMongoErr(err)
		}
		return &v, nil
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&v); err != nil {
		return nil, mapMongoErr(err)
	}
	return &v, nil
}

func (r mongoVideos) DeleteByObjectID(ctx context.Context, hexID string) error {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r mongoVideos) DeleteByVideoID(ctx context.Context, videoID int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"video_id": videoID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- saved ---

type mongoSaved struct{ coll *mongo.Collection }

func (r mongoSaved) ListByUser(ctx context.Context, userID string) ([]models.SavedEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	entries := make([]models.SavedEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r mongoSaved) FindByUserAndKey(ctx context.Context, userID, field string, value any) (*models.SavedEntry, error) {
	filter := bson.M{"user_id": userID}
	if field != "" {
		filter["video."+field] = value
	}
	var e models.SavedEntry
	if err := r.coll.FindOne(ctx, filter).Decode(&e); err != nil {
		return nil, mapMongoErr(err)
	}
	return &e, nil
}

func (r mongoSaved) Insert(ctx context.Context, e *models.SavedEntry) error {
	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return mapMongoErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}
	return nil
}

func (r mongoSaved) Delete(ctx context.Context, userID, savedID string) error {
	oid, err := primitive.ObjectIDFromHex(savedID)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
