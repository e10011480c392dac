package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/paging"
	"github.com/blaze/backend/internal/store"
)

type MongoPhotoService struct {
	photos *mongo.Collection
}

func NewMongoPhotoService(st *store.Store) *MongoPhotoService {
	return &MongoPhotoService{photos: st.Photos}
}

type PhotoList struct {
	Photos     []models.Photo
	Page       int
	TotalPages int
}

// CreateMany persists one record per transformed image, all owned by
// ownerID, in a single ordered insert.
func (s *MongoPhotoService) CreateMany(ownerID string, pics [][]byte) ([]models.Photo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	photos := make([]models.Photo, 0, len(pics))
	docs := make([]interface{}, 0, len(pics))
	for _, pic := range pics {
		p := models.Photo{
			ID:        uuid.New().String(),
			Pic:       pic,
			OwnerID:   ownerID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		photos = append(photos, p)
		docs = append(docs, p)
	}

	if _, err := s.photos.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return photos, nil
}

func (s *MongoPhotoService) GetOwned(id, ownerID string) (*models.Photo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var photo models.Photo
	err := s.photos.FindOne(ctx, bson.M{"_id": id, "owner": ownerID}).Decode(&photo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (s *MongoPhotoService) List(req paging.Request) (*PhotoList, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	total, err := s.photos.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, err
	}

	skip, limit := req.Window()
	cur, err := s.photos.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"pic": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var photos []models.Photo
	if err := cur.All(ctx, &photos); err != nil {
		return nil, err
	}

	return &PhotoList{
		Photos:     photos,
		Page:       req.Page,
		TotalPages: paging.TotalPages(total, req.PerPage),
	}, nil
}

func (s *MongoPhotoService) UpdatePic(id, ownerID string, pic []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.photos.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"pic": pic, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (s *MongoPhotoService) Delete(id, ownerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.photos.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (s *MongoPhotoService) GetPic(id string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc struct {
		Pic []byte `bson:"pic"`
	}
	err := s.photos.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"pic": 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return doc.Pic, nil
}
