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

type MongoVideoService struct {
	videos *mongo.Collection
}

func NewMongoVideoService(st *store.Store) *MongoVideoService {
	return &MongoVideoService{videos: st.Videos}
}

type VideoList struct {
	Videos     []models.Video
	Page       int
	TotalPages int
}

// Create stores the parsed identifier, never the pasted URL.
func (s *MongoVideoService) Create(ownerID string, fields models.VideoFields) (*models.Video, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	video := &models.Video{
		ID:        uuid.New().String(),
		Title:     fields.Title,
		VideoID:   models.YouTubeVideoID(fields.VideoID),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.videos.InsertOne(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *MongoVideoService) GetOwned(id, ownerID string) (*models.Video, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var video models.Video
	err := s.videos.FindOne(ctx, bson.M{"_id": id, "owner": ownerID}).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (s *MongoVideoService) List(req paging.Request) (*VideoList, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	total, err := s.videos.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, err
	}

	skip, limit := req.Window()
	cur, err := s.videos.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var videos []models.Video
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}

	return &VideoList{
		Videos:     videos,
		Page:       req.Page,
		TotalPages: paging.TotalPages(total, req.PerPage),
	}, nil
}

func (s *MongoVideoService) UpdateFields(id, ownerID string, fields models.VideoFields) (*models.Video, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res := s.videos.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{
			"title":      fields.Title,
			"video_id":   models.YouTubeVideoID(fields.VideoID),
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Video
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoVideoService) Delete(id, ownerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.videos.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrVideoNotFound
	}
	return nil
}
