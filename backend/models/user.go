package models

import (
	"time"

	"gorm.io/gorm"
)

// TrackedUser records every username whose stats were fetched successfully.
type TrackedUser struct {
	gorm.Model
	Username      string `gorm:"uniqueIndex;not null"`
	LastFetchedAt time.Time
	LookupCount   int `gorm:"default:0"`
}

// RecentUser is the public view of a TrackedUser.
type RecentUser struct {
	Username      string    `json:"username"`
	LastFetchedAt time.Time `json:"lastFetchedAt"`
	LookupCount   int       `json:"lookupCount"`
}
