package models

import (
	"time"
)

// Price tiers are ordinal: "$" < "$$" < "$$$" < "$$$$" holds under plain
// lexical comparison, which is what the price sort relies on.
const (
	PriceCheap     = "$"
	PriceModerate  = "$$"
	PriceExpensive = "$$$"
	PriceLuxury    = "$$$$"
)

type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

type Photo struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	Name       string     `json:"name" gorm:"not null"`
	Memo       string     `json:"memo"`
	Location   Location   `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Rating     int        `json:"rating" gorm:"not null"`
	ImageURL   string     `json:"image_url" gorm:"not null"`
	ImageKey   string     `json:"-" gorm:"not null"`
	Tags       []string   `json:"tags" gorm:"type:json;serializer:json"`
	Visited    bool       `json:"visited" gorm:"not null;default:false"`
	IsPublic   bool       `json:"is_public" gorm:"not null;default:false;index"`
	PriceRange string     `json:"price_range"`
	VisitedAt  *time.Time `json:"visited_at,omitempty"`
	Comments   []Comment  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Likes      []Like     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PhotoID   uint      `json:"photo_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Text      string    `json:"text" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PhotoID   uint      `json:"photo_id" gorm:"not null;uniqueIndex:idx_likes_photo_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_photo_user"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoForm carries the multipart fields of create/update. The image file
// itself is handled separately by the handler.
type PhotoForm struct {
	Name       string `validate:"required"`
	Memo       string
	Address    string `validate:"required"`
	Lat        float64
	Lng        float64
	Rating     int `validate:"required,min=1,max=5"`
	Tags       []string
	Visited    bool
	IsPublic   bool
	PriceRange string `validate:"omitempty,price_range"`
	VisitedAt  *time.Time
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type PhotoResponse struct {
	ID           uint              `json:"id"`
	UserID       uint              `json:"user_id"`
	Name         string            `json:"name"`
	Memo         string            `json:"memo,omitempty"`
	Location     Location          `json:"location"`
	Rating       int               `json:"rating"`
	ImageURL     string            `json:"image_url"`
	Tags         []string          `json:"tags"`
	Visited      bool              `json:"visited"`
	IsPublic     bool              `json:"is_public"`
	PriceRange   string            `json:"price_range,omitempty"`
	VisitedAt    *time.Time        `json:"visited_at,omitempty"`
	LikeCount    int               `json:"like_count"`
	CommentCount int               `json:"comment_count"`
	Liked        bool              `json:"liked"`
	Comments     []CommentResponse `json:"comments,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type CommentResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

type PhotoListResponse struct {
	Photos      []PhotoResponse `json:"photos"`
	TotalCount  int64           `json:"total_count"`
	TotalPages  int             `json:"total_pages"`
	CurrentPage int             `json:"current_page"`
}
