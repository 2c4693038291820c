package models

import "time"

// column limits, shared with the migrations
const (
	TitleMaxLen       = 120
	DescriptionMaxLen = 240
	ReviewMaxLen      = 120
)

type Movie struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:120;uniqueIndex;not null"`
	Year        int       `json:"year" gorm:"not null"`
	Description string    `json:"description" gorm:"size:240;not null"`
	Rating      *float64  `json:"rating,omitempty"`
	Review      *string   `json:"review,omitempty" gorm:"size:120"`
	ImgURL      string    `json:"img_url" gorm:"column:img_url;size:240;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// derived from rating order on each list view, never stored
	Ranking *int `json:"ranking,omitempty" gorm:"-"`
}

func (Movie) TableName() string {
	return "movies"
}
