package api

import (
	"strconv"
	"time"

	"github.com/jrsteele09/rental-portal/users"
)

type Listing struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	PropertyType string    `json:"propertyType"`
	ListingType  string    `json:"listingType"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city"`
	District     string    `json:"district,omitempty"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Deposit      float64   `json:"deposit,omitempty"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Area         float64   `json:"area"`
	Amenities    []string  `json:"amenities,omitempty"`
	Images       []string  `json:"images,omitempty"`
	Status       string    `json:"status,omitempty"`
	VIP          bool      `json:"vip,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// ListingInput is the writable part of a Listing
type ListingInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	PropertyType string   `json:"propertyType"`
	ListingType  string   `json:"listingType"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	District     string   `json:"district"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Deposit      float64  `json:"deposit"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         float64  `json:"area"`
	Amenities    []string `json:"amenities,omitempty"`
	Images       []string `json:"images,omitempty"`
}

type ListingQuery struct {
	Page        int
	PageSize    int
	City        string
	ListingType string
	MinPrice    float64
	MaxPrice    float64
	Status      string
}

type AdminUser struct {
	ID        string           `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Roles     []users.RoleType `json:"roles,omitempty"`
	Blocked   bool             `json:"blocked,omitempty"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
}

type AdminUserInput struct {
	FirstName string           `json:"firstName,omitempty"`
	LastName  string           `json:"lastName,omitempty"`
	Email     string           `json:"email,omitempty"`
	Password  string           `json:"password,omitempty"`
	Roles     []users.RoleType `json:"roles,omitempty"`
	Blocked   *bool            `json:"blocked,omitempty"`
}

type NewsArticle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

type NewsInput struct {
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type MembershipTier struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"durationDays"`
	Perks        []string `json:"perks,omitempty"`
}

type Membership struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TierID    string    `json:"tierId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Report struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listingId"`
	ReporterID string    `json:"reporterId,omitempty"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// DescriptionRequest is the listing context sent to the content generation service
type DescriptionRequest struct {
	Title        string   `json:"title"`
	PropertyType string   `json:"propertyType"`
	ListingType  string   `json:"listingType,omitempty"`
	City         string   `json:"city,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Area         float64  `json:"area,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
