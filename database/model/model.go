// Package model defines the persistent entities of the content API.
package model

import "time"

// Comment is a visitor-submitted comment. It starts unapproved and becomes
// publicly visible only after moderation.
type Comment struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"not null"`
	Text       string    `json:"text" gorm:"not null"`
	Email      string    `json:"email,omitempty"`
	IsApproved bool      `json:"isApproved" gorm:"not null;default:false;index"`
	IP         string    `json:"ip" gorm:"column:ip"`
	UserAgent  string    `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// News is an article with a draft/published lifecycle. PublishedAt is set the
// first time the article is published and cleared when it is unpublished.
type News struct {
	Id          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null"`
	Content     string     `json:"content" gorm:"not null"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Image       string     `json:"image,omitempty"`
	Author      string     `json:"author,omitempty"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	IsPublished bool       `json:"isPublished" gorm:"not null;default:false;index"`
	IsFeatured  bool       `json:"isFeatured" gorm:"not null;default:false"`
	Views       int64      `json:"views" gorm:"not null;default:0"`
	Likes       int64      `json:"likes" gorm:"not null;default:0"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Product categories form a closed set.
const (
	CategoryNFT      = "nft"
	CategoryPhysical = "physical"
	CategoryDigital  = "digital"
	CategoryService  = "service"
)

// ValidCategory reports whether category belongs to the closed category set.
func ValidCategory(category string) bool {
	switch category {
	case CategoryNFT, CategoryPhysical, CategoryDigital, CategoryService:
		return true
	}
	return false
}

// Currencies accepted for product prices.
const (
	CurrencyStars = "stars"
	CurrencyRub   = "rub"
	CurrencyUsd   = "usd"
)

// ValidCurrency reports whether currency belongs to the closed currency set.
func ValidCurrency(currency string) bool {
	switch currency {
	case CurrencyStars, CurrencyRub, CurrencyUsd:
		return true
	}
	return false
}

// Rating is an aggregate product rating, stored as a JSON column.
type Rating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Product is a catalog entry.
type Product struct {
	Id             int               `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string            `json:"name" gorm:"not null"`
	Description    string            `json:"description" gorm:"not null"`
	Price          float64           `json:"price" gorm:"not null"`
	Currency       string            `json:"currency" gorm:"not null;default:stars"`
	Images         []string          `json:"images" gorm:"serializer:json"`
	Category       string            `json:"category" gorm:"not null;index"`
	Stock          int               `json:"stock" gorm:"not null;default:0"`
	IsAvailable    bool              `json:"isAvailable" gorm:"not null;default:true;index"`
	IsFeatured     bool              `json:"isFeatured" gorm:"not null;default:false"`
	Tags           []string          `json:"tags" gorm:"serializer:json"`
	Specifications map[string]string `json:"specifications,omitempty" gorm:"serializer:json"`
	Views          int64             `json:"views" gorm:"not null;default:0"`
	Sales          int64             `json:"sales" gorm:"not null;default:0"`
	Rating         Rating            `json:"rating" gorm:"serializer:json"`
	CreatedAt      time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
