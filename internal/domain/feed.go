package domain

import (
	"sort"
	"time"
)

// StoryGroup is one carousel entry: an owner's active stories and whether the
// viewer has seen all of them. Derived per request, never persisted.
type StoryGroup struct {
	Owner        StoryOwner
	Stories      []Story
	HasViewedAll bool
}

// LatestCreatedAt returns the creation time of the newest story in the group.
func (g StoryGroup) LatestCreatedAt() time.Time {
	var latest time.Time
	for _, s := range g.Stories {
		if s.CreatedAt.After(latest) {
			latest = s.CreatedAt
		}
	}
	return latest
}

// SortGroupsByRecency orders groups by latest story, newest first. Equal
// timestamps fall back to owner id ascending so output never depends on
// fetch completion order.
func SortGroupsByRecency(groups []StoryGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		li, lj := groups[i].LatestCreatedAt(), groups[j].LatestCreatedAt()
		if !li.Equal(lj) {
			return li.After(lj)
		}
		return groups[i].Owner.ID < groups[j].Owner.ID
	})
}

// SortStoriesByCreation orders stories oldest first, the order they play in.
func SortStoriesByCreation(stories []Story) {
	sort.SliceStable(stories, func(i, j int) bool {
		if !stories[i].CreatedAt.Equal(stories[j].CreatedAt) {
			return stories[i].CreatedAt.Before(stories[j].CreatedAt)
		}
		return stories[i].ID < stories[j].ID
	})
}
