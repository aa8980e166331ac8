package models

import "time"

// Review is a product rating left by a user. One review per user/product.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewSummary aggregates ratings for a product.
type ReviewSummary struct {
	ProductID     int64       `json:"product_id"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	StarCounts    map[int]int `json:"star_counts"`
}
