package transform

import (
	"fmt"

	"talkmigrate/internal/models"
)

// Aggregator applies counter increments to explicit story, user and site
// destinations as comments and actions are transformed. Each qualifying
// record is added exactly once; nothing is recounted later.
type Aggregator struct {
	stories map[string]*models.Story
	users   map[string]*models.User
	site    *models.CommentCounts
}

func NewAggregator(stories map[string]*models.Story, users map[string]*models.User, site *models.CommentCounts) *Aggregator {
	return &Aggregator{stories: stories, users: users, site: site}
}

// ResetSite zeroes every site bucket before the run starts.
func ResetSite(site *models.Site) {
	site.CommentCounts = models.CommentCounts{}
}

// AddComment counts a non-deleted comment against its story, author and the
// site. A missing author is returned as a dangling reference; the other
// destinations are still counted.
func (a *Aggregator) AddComment(c *models.Comment) (*models.DanglingReference, error) {
	if !c.Counted() {
		return nil, nil
	}
	story, ok := a.stories[c.StoryID]
	if !ok {
		return nil, fmt.Errorf("comment %s counted against unknown story %s", c.ID, c.StoryID)
	}
	if err := story.CommentCounts.Status.Inc(c.Status); err != nil {
		return nil, fmt.Errorf("comment %s: %w", c.ID, err)
	}
	if story.LastCommentedAt == nil || c.CreatedAt.After(*story.LastCommentedAt) {
		ts := c.CreatedAt
		story.LastCommentedAt = &ts
	}
	if err := a.site.Status.Inc(c.Status); err != nil {
		return nil, fmt.Errorf("comment %s: %w", c.ID, err)
	}

	if c.AuthorID == nil {
		return nil, nil
	}
	user, ok := a.users[*c.AuthorID]
	if !ok {
		return &models.DanglingReference{Entity: "comment", RecordID: c.ID, Field: "author_id", Target: "user " + *c.AuthorID}, nil
	}
	if err := user.CommentCounts.Status.Inc(c.Status); err != nil {
		return nil, fmt.Errorf("comment %s: %w", c.ID, err)
	}
	return nil, nil
}

// AddReaction counts a migrated reaction against its story and the site.
func (a *Aggregator) AddReaction(action *models.CommentAction) error {
	story, ok := a.stories[action.StoryID]
	if !ok {
		return fmt.Errorf("action %s counted against unknown story %s", action.ID, action.StoryID)
	}
	story.CommentCounts.Action.Reaction++
	a.site.Action.Reaction++
	return nil
}
