package models

import "time"

type Photo struct {
	ID        string    `bson:"_id"`
	Pic       []byte    `bson:"pic"`
	OwnerID   string    `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type PhotoView struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Photo) Public() PhotoView {
	return PhotoView{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
