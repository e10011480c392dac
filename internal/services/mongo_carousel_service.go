package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/store"
)

type MongoCarouselService struct {
	carousels *mongo.Collection
}

func NewMongoCarouselService(st *store.Store) *MongoCarouselService {
	return &MongoCarouselService{carousels: st.Carousels}
}

func (s *MongoCarouselService) Create(ownerID string, pic []byte) (*models.Carousel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	carousel := &models.Carousel{
		ID:        uuid.New().String(),
		Pic:       pic,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.carousels.InsertOne(ctx, carousel); err != nil {
		return nil, err
	}
	return carousel, nil
}

func (s *MongoCarouselService) GetOwned(id, ownerID string) (*models.Carousel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var carousel models.Carousel
	err := s.carousels.FindOne(ctx, bson.M{"_id": id, "owner": ownerID}).Decode(&carousel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCarouselNotFound
		}
		return nil, err
	}
	return &carousel, nil
}

// ListAll returns every carousel record, oldest first, without image bytes.
// The homepage takes the first three; the admin panel shows them all.
func (s *MongoCarouselService) ListAll() ([]models.Carousel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cur, err := s.carousels.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"carousel_pic": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var carousels []models.Carousel
	if err := cur.All(ctx, &carousels); err != nil {
		return nil, err
	}
	return carousels, nil
}

func (s *MongoCarouselService) UpdatePic(id, ownerID string, pic []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.carousels.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"carousel_pic": pic, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCarouselNotFound
	}
	return nil
}

func (s *MongoCarouselService) GetPic(id string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc struct {
		Pic []byte `bson:"carousel_pic"`
	}
	err := s.carousels.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"carousel_pic": 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCarouselNotFound
		}
		return nil, err
	}
	return doc.Pic, nil
}
