package models

import "time"

type Carousel struct {
	ID        string    `bson:"_id"`
	Pic       []byte    `bson:"carousel_pic"`
	OwnerID   string    `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type CarouselView struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Carousel) Public() CarouselView {
	return CarouselView{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
