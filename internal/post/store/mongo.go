package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/inkpress/internal/post"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the MongoDB-backed document store. Posts are stored with a
// string "_id" assigned on creation.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	// slug.current backs the public lookup key; index it unique as a backstop
	// behind the pipeline's collision check
	idxModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "slug.current", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoStore{col: col}
}

func (m *MongoStore) GetByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoStore) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	var p post.Post
	err := m.col.FindOne(ctx, bson.M{"slug.current": slug}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoStore) List(ctx context.Context) ([]*post.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{"_type": "post"}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*post.Post{}
	for cur.Next(ctx) {
		var p post.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (m *MongoStore) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *MongoStore) Patch(ctx context.Context, id string, set map[string]any) (*post.Post, error) {
	fields := bson.M{"_updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
