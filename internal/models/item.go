package models

import (
	"strings"
	"time"
)

type Item struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Category  string    `bson:"category"`
	Price     float64   `bson:"price"`
	Pic       []byte    `bson:"item_pic"`
	OwnerID   string    `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// ItemView omits the raw image; images are served from the binary endpoint.
type ItemView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Item) Public() ItemView {
	return ItemView{
		ID:        i.ID,
		Name:      i.Name,
		Category:  i.Category,
		Price:     i.Price,
		OwnerID:   i.OwnerID,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type ItemFields struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func (f *ItemFields) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		errors["name"] = "Item name is required"
	}
	if strings.TrimSpace(f.Category) == "" {
		errors["category"] = "Item category is required"
	}
	if f.Price < 0 {
		errors["price"] = "price must be a positive number"
	}

	return errors
}
