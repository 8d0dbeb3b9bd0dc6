package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vaultkeep/internal/core"
)

const userCollection = "user_data"

var _ core.UserStore = (*MongoUserStore)(nil)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(userCollection)}
}

func (s *MongoUserStore) Create(ctx context.Context, u core.User) (string, error) {
	now := nowUnix()
	doc := userDoc{
		Username:    u.Username,
		Password:    u.Password,
		Name:        u.Name,
		EmailID:     u.EmailID,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("inserting user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*core.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoUserStore) GetByUsername(ctx context.Context, username string) (*core.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*core.User, error) {
	filter["is_deleted"] = false

	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	u := docToUser(doc)
	return &u, nil
}

func (s *MongoUserStore) List(ctx context.Context, opts core.ListOptions) ([]core.User, error) {
	filter := bson.M{"is_deleted": false}
	for field, value := range opts.Filters {
		if field == "id" {
			oid, err := primitive.ObjectIDFromHex(value)
			if err != nil {
				return nil, core.ErrNotFound
			}
			filter["_id"] = oid
			continue
		}
		filter[field] = value
	}

	sortBy := opts.SortBy
	if sortBy == "" || sortBy == "id" {
		sortBy = "_id"
	}
	order := 1
	if opts.Descending {
		order = -1
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: sortBy, Value: order}}))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}

	users := make([]core.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, docToUser(doc))
	}
	return users, nil
}

func (s *MongoUserStore) Update(ctx context.Context, id string, upd core.UserUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{
			"username":      upd.Username,
			"name":          upd.Name,
			"email_id":      upd.EmailID,
			"date_of_birth": upd.DateOfBirth,
			"updated_at":    nowUnix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{
			"is_deleted": true,
			"updated_at": nowUnix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func docToUser(doc userDoc) core.User {
	return core.User{
		ID:          doc.ID.Hex(),
		Username:    doc.Username,
		Password:    doc.Password,
		Name:        doc.Name,
		EmailID:     doc.EmailID,
		DateOfBirth: doc.DateOfBirth,
		IsDeleted:   doc.IsDeleted,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
