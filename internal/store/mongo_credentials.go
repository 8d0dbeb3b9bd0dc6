package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vaultkeep/internal/core"
)

const credentialCollection = "credential_data"

var _ core.CredentialStore = (*MongoCredentialStore)(nil)

type MongoCredentialStore struct {
	coll *mongo.Collection
}

func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{coll: db.Collection(credentialCollection)}
}

func (s *MongoCredentialStore) Create(ctx context.Context, c core.Credential) (string, error) {
	now := nowUnix()
	doc := credentialDoc{
		UserID:    c.UserID,
		Title:     c.Title,
		Username:  c.Username,
		Password:  c.Password,
		URL:       c.URL,
		Notes:     c.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("inserting credential: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoCredentialStore) GetByID(ctx context.Context, userID, credentialID string) (*core.Credential, error) {
	oid, err := primitive.ObjectIDFromHex(credentialID)
	if err != nil {
		return nil, core.ErrNotFound
	}

	var doc credentialDoc
	err = s.coll.FindOne(ctx, bson.M{
		"_id":        oid,
		"user_id":    userID,
		"is_deleted": false,
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("finding credential: %w", err)
	}

	c := docToCredential(doc)
	return &c, nil
}

func (s *MongoCredentialStore) ListByUser(ctx context.Context, userID, search string) ([]core.Credential, error) {
	filter := bson.M{"user_id": userID, "is_deleted": false}
	if search != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []credentialDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding credentials: %w", err)
	}

	creds := make([]core.Credential, 0, len(docs))
	for _, doc := range docs {
		creds = append(creds, docToCredential(doc))
	}
	return creds, nil
}

func (s *MongoCredentialStore) Update(ctx context.Context, userID, credentialID string, upd core.CredentialUpdate) error {
	oid, err := primitive.ObjectIDFromHex(credentialID)
	if err != nil {
		return core.ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID, "is_deleted": false},
		bson.M{"$set": bson.M{
			"title":      upd.Title,
			"username":   upd.Username,
			"password":   upd.Password,
			"url":        upd.URL,
			"notes":      upd.Notes,
			"updated_at": nowUnix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("updating credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *MongoCredentialStore) Delete(ctx context.Context, userID, credentialID string) error {
	oid, err := primitive.ObjectIDFromHex(credentialID)
	if err != nil {
		return core.ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID, "is_deleted": false},
		bson.M{"$set": bson.M{
			"is_deleted": true,
			"updated_at": nowUnix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func docToCredential(doc credentialDoc) core.Credential {
	return core.Credential{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Title:     doc.Title,
		Username:  doc.Username,
		Password:  doc.Password,
		URL:       doc.URL,
		Notes:     doc.Notes,
		IsDeleted: doc.IsDeleted,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
