package models

import "time"

type Slide struct {
	ID          int64
	ImagePath   string
	ImageURL    string
	Title       string
	Description string
	Order       int
	IsActive    bool
	CreatedAt   time.Time
}
