package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/princinho/accountsapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoUserStore keeps user records in a single mongo collection, one
// document per user with the pending reset request embedded.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(col *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{col: col}
}

// EnsureIndexes creates the unique email index the duplicate checks rely on.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// an unparseable id cannot resolve to any record
		return nil, nil
	}
	return s.findOne(ctx, bson.M{"_id": objID})
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *MongoUserStore) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.FirstName != nil {
		set["firstName"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["lastName"] = *upd.LastName
	}

	res, err := s.col.UpdateByID(ctx, objID, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": objID})
}

func (s *MongoUserStore) SetResetRequest(ctx context.Context, id string, req *models.ResetRequest) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"passwordResetRequest": req,
		"updatedAt":            time.Now().UTC(),
	}}
	if req == nil {
		update = bson.M{
			"$unset": bson.M{"passwordResetRequest": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	}

	res, err := s.col.UpdateByID(ctx, objID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id string, hash string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.col.UpdateByID(ctx, objID, bson.M{
		"$set": bson.M{
			"passwordHash": hash,
			"updatedAt":    time.Now().UTC(),
		},
		"$unset": bson.M{"passwordResetRequest": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) SetAvatarURL(ctx context.Context, id string, url string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.col.UpdateByID(ctx, objID, bson.M{
		"$set": bson.M{
			"avatarUrl": url,
			"updatedAt": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id string) error {
	objID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func isDuplicateKey(err error) bool {
	// Preferred: typed error
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Sometimes we might get a BulkWriteException
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Fallback
	return strings.Contains(err.Error(), "E11000 duplicate key error")
}
