// Package mongostore implements repository.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moodify/core/internal/database"
	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.Store = (*Store)(nil)

func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// Database exposes the handle for index setup.
func (s *Store) Database() *mongo.Database { return s.db }

func (s *Store) Users() repository.UserRepository {
	return users{c: s.db.Collection(database.CollectionUsers)}
}

func (s *Store) Moods() repository.MoodRepository {
	return moods{c: s.db.Collection(database.CollectionMoods)}
}

func (s *Store) Playlists() repository.PlaylistRepository {
	return playlists{c: s.db.Collection(database.CollectionPlaylists)}
}

func (s *Store) Feedback() repository.FeedbackRepository {
	return feedback{c: s.db.Collection(database.CollectionFeedback)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func newestFirst(sortKey string, limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

type users struct{ c *mongo.Collection }

func (r users) Create(ctx context.Context, user *models.User) error {
	user.Normalize()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.c.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r users) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Normalize()
	return &u, nil
}

func (r users) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r users) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.c.UpdateByID(ctx, id, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r users) Update(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) error {
	set := bson.M{}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}
	if len(set) == 0 {
		return nil
	}
	return r.updateOne(ctx, id, bson.M{"$set": set})
}

func (r users) Touch(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"lastActivity": at}})
}

func (r users) SetTopMoods(ctx context.Context, id primitive.ObjectID, top []string) error {
	if top == nil {
		top = []string{}
	}
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"topMoods": top}})
}

func (r users) RecordMood(ctx context.Context, id primitive.ObjectID, entry *models.MoodEntry) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"currentMood":   entry.Primary(),
		"lastMoodId":    entry.ID,
		"moodTimestamp": entry.Timestamp,
		"lastActivity":  entry.Timestamp,
	}})
}

func (r users) SetLikedSong(ctx context.Context, id primitive.ObjectID, songID string, liked bool) error {
	op := "$pull"
	if liked {
		op = "$addToSet"
	}
	return r.updateOne(ctx, id, bson.M{op: bson.M{"likedSongs": songID}})
}

func (r users) ListActiveSince(ctx context.Context, since time.Time) ([]primitive.ObjectID, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"lastActivity": bson.M{"$gte": since}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode active users: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

type moods struct{ c *mongo.Collection }

func (r moods) Create(ctx context.Context, entry *models.MoodEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if _, err := r.c.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert mood: %w", err)
	}
	return nil
}

func (r moods) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.MoodEntry, error) {
	cur, err := r.c.Find(ctx, bson.M{"userId": userID}, newestFirst("timestamp", limit))
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	out := make([]models.MoodEntry, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode moods: %w", err)
	}
	return out, nil
}

func (r moods) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{"userId": userID})
}

type playlists struct{ c *mongo.Collection }

func (r playlists) Create(ctx context.Context, p *models.Playlist) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.c.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

func (r playlists) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	var p models.Playlist
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	return &p, nil
}

func (r playlists) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Playlist, error) {
	cur, err := r.c.Find(ctx, bson.M{"userId": userID}, newestFirst("createdAt", limit))
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	out := make([]models.Playlist, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode playlists: %w", err)
	}
	return out, nil
}

func (r playlists) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{"userId": userID})
}

func (r playlists) Rename(ctx context.Context, userID, id primitive.ObjectID, name string) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return fmt.Errorf("rename playlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrPlaylistNotFound
	}
	return nil
}

func (r playlists) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrPlaylistNotFound
	}
	return nil
}

func (r playlists) PullSong(ctx context.Context, userID primitive.ObjectID, songID string) (int64, error) {
	res, err := r.c.UpdateMany(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"songs": bson.M{"id": songID}}})
	if err != nil {
		return 0, fmt.Errorf("pull song: %w", err)
	}
	return res.ModifiedCount, nil
}

type feedback struct{ c *mongo.Collection }

func (r feedback) Create(ctx context.Context, f *models.Feedback) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	if _, err := r.c.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}
