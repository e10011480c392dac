package store

import (
	"context"
	"crypto/tls"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the single mongo client for the process and hands out the
// named collections the services work against.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	Users     *mongo.Collection
	Items     *mongo.Collection
	Photos    *mongo.Collection
	Videos    *mongo.Collection
	Carousels *mongo.Collection
}

func New(ctx context.Context, mongoURI, dbName string) (*Store, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless
	// we force TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	s := &Store{
		client:    client,
		db:        db,
		Users:     db.Collection("users"),
		Items:     db.Collection("items"),
		Photos:    db.Collection("photos"),
		Videos:    db.Collection("videos"),
		Carousels: db.Collection("carousels"),
	}

	// Best-effort indexes.
	_, _ = s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	for _, coll := range []*mongo.Collection{s.Items, s.Photos, s.Videos, s.Carousels} {
		_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		})
	}

	log.Printf("MongoDB connected: db=%s", dbName)
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
