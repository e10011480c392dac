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

type MongoItemService struct {
	items *mongo.Collection
}

func NewMongoItemService(st *store.Store) *MongoItemService {
	return &MongoItemService{items: st.Items}
}

// ItemList is one page of the public item listing.
type ItemList struct {
	Items      []models.Item
	Page       int
	TotalPages int
	Categories []string
	Category   string
}

func (s *MongoItemService) Create(ownerID string, fields models.ItemFields, pic []byte) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	item := &models.Item{
		ID:        uuid.New().String(),
		Name:      fields.Name,
		Category:  fields.Category,
		Price:     fields.Price,
		Pic:       pic,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.items.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetOwned resolves an item only when it belongs to ownerID. Foreign-owned
// and absent items are indistinguishable to the caller.
func (s *MongoItemService) GetOwned(id, ownerID string) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item models.Item
	err := s.items.FindOne(ctx, bson.M{"_id": id, "owner": ownerID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List returns one created-at-descending window of items, the page count,
// and the category facet over the whole collection.
func (s *MongoItemService) List(req paging.Request, category string) (*ItemList, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	var total int64
	var err error
	if category != "" {
		total, err = s.items.CountDocuments(ctx, filter)
	} else {
		total, err = s.items.EstimatedDocumentCount(ctx)
	}
	if err != nil {
		return nil, err
	}

	skip, limit := req.Window()
	cur, err := s.items.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"item_pic": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	categories, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}

	return &ItemList{
		Items:      items,
		Page:       req.Page,
		TotalPages: paging.TotalPages(total, req.PerPage),
		Categories: categories,
		Category:   category,
	}, nil
}

// categories scans all items oldest-first and keeps each category's first
// occurrence, so the facet order is stable across pages.
func (s *MongoItemService) categories(ctx context.Context) ([]string, error) {
	cur, err := s.items.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"category": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var all []string
	for cur.Next(ctx) {
		var doc struct {
			Category string `bson:"category"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		all = append(all, doc.Category)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return paging.DedupeOrdered(all), nil
}

func (s *MongoItemService) UpdateFields(id, ownerID string, fields models.ItemFields) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res := s.items.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{
			"name":       fields.Name,
			"category":   fields.Category,
			"price":      fields.Price,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Item
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoItemService) UpdatePic(id, ownerID string, pic []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.items.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"item_pic": pic, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *MongoItemService) Delete(id, ownerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.items.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GetPic serves the binary image endpoint; it is not owner-scoped.
func (s *MongoItemService) GetPic(id string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc struct {
		Pic []byte `bson:"item_pic"`
	}
	err := s.items.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"item_pic": 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return doc.Pic, nil
}
