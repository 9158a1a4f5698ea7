package domain

import "time"

type User struct {
	ID         string
	ExternalID string // subject issued by the identity provider
	Username   string
	FullName   string
	ImageURL   string
	CreatedAt  time.Time
}

type FollowEdge struct {
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}

// StoryOwner is the public projection of a user shown on a carousel entry.
type StoryOwner struct {
	ID       string
	Username string
	FullName string
	ImageURL string
}

func (u User) Owner() StoryOwner {
	return StoryOwner{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		ImageURL: u.ImageURL,
	}
}

// Viewer is one row of a story's viewer list.
type Viewer struct {
	UserID   string
	Username string
	FullName string
	ImageURL string
	ViewedAt time.Time
}
