package model

import "time"

type Venue struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VenueRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Address  string `json:"address" binding:"required,max=500"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}
