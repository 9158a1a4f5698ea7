package domain

import (
	"time"

	"github.com/google/uuid"
)

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

type Story struct {
	ID            string
	OwnerID       string
	ImageURL      string    // resolved from StorageHandle at creation time
	StorageHandle string    // opaque blob reference
	CreatedAt     time.Time
	ExpiresAt     time.Time // always CreatedAt + StoryTTL
}

// NewStory builds a story stamped at now. ExpiresAt is derived, never passed in.
func NewStory(ownerID, imageURL, storageHandle string, now time.Time) Story {
	return Story{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		ImageURL:      imageURL,
		StorageHandle: storageHandle,
		CreatedAt:     now,
		ExpiresAt:     now.Add(StoryTTL),
	}
}

// IsExpired reports whether the story is gone at now. The expiry instant itself counts as expired.
func (s Story) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type StoryView struct {
	ViewerID string
	StoryID  string
	ViewedAt time.Time
}
