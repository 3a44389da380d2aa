package transform

import (
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"

	"github.com/spf13/cast"
)

const legacyReactionKey = "respect"

// CommentSet holds transformed comments in processing order.
type CommentSet struct {
	Comments []*models.Comment
	Index    map[string]*models.Comment
}

func (t *Transformer) Comments(docs []models.Document, stories *StorySet, users *UserSet, agg *Aggregator, report *models.Report) (*CommentSet, error) {
	set := &CommentSet{Index: make(map[string]*models.Comment, len(docs))}

	for _, doc := range docs {
		report.Comments.Read++

		var legacy models.LegacyComment
		if _, err := t.validate(schema.EntityComment, doc, &legacy); err != nil {
			return nil, err
		}

		story, ok := stories.Lookup(legacy.AssetID)
		if !ok {
			report.Comments.Dropped++
			t.dangling(report, providers.TypeComment, &models.DanglingReference{
				Entity: "comment", RecordID: legacy.ID, Field: "asset_id", Target: "story " + legacy.AssetID,
			})
			continue
		}

		c := t.comment(&legacy, story.ID, users)
		d, err := agg.AddComment(c)
		if err != nil {
			return nil, err
		}
		if d != nil {
			t.dangling(report, providers.TypeComment, d)
		}

		set.Comments = append(set.Comments, c)
		set.Index[c.ID] = c
	}

	report.Comments.Migrated = len(set.Comments)
	t.logger.Infof(providers.TypeComment, "Migrated %d comments, dropped %d", len(set.Comments), report.Comments.Dropped)
	return set, nil
}

func (t *Transformer) comment(legacy *models.LegacyComment, storyID string, users *UserSet) *models.Comment {
	status := legacy.Status
	if status == models.LegacyStatusAccepted {
		status = models.StatusApproved
	}
	c := &models.Comment{
		ID:           legacy.ID,
		TenantID:     t.scope.TenantID,
		StoryID:      storyID,
		SiteID:       t.scope.SiteID,
		AuthorID:     legacy.AuthorID,
		AncestorIDs:  []string{},
		ChildIDs:     []string{},
		Revisions:    []models.Revision{},
		Status:       status,
		Tags:         []models.CommentTag{},
		ActionCounts: map[string]int{},
		CreatedAt:    legacy.CreatedAt,
	}
	if legacy.ParentID != nil && *legacy.ParentID != "" {
		c.ParentID = *legacy.ParentID
	}

	switch {
	case legacy.DeletedAt != nil:
		deletedAt := *legacy.DeletedAt
		c.DeletedAt = &deletedAt
		return c
	case legacy.AuthorID != nil && users.IsDeleted(*legacy.AuthorID):
		deletedAt := t.now()
		c.AuthorID = nil
		c.DeletedAt = &deletedAt
		return c
	}

	// flags and dontagree counts have no target equivalent
	counts := map[string]int{models.ActionReaction: cast.ToInt(legacy.ActionCounts[legacyReactionKey])}
	c.ActionCounts = counts

	c.Revisions = append(c.Revisions, models.Revision{
		ID:           t.newID(),
		Body:         legacy.Metadata.RichTextBody,
		ActionCounts: map[string]int{models.ActionReaction: counts[models.ActionReaction]},
		Metadata:     models.RevisionMetadata{Nudge: true, LinkCount: 0},
		CreatedAt:    legacy.CreatedAt,
	})

	for _, tag := range legacy.Tags {
		if tag.Tag.Name == models.LegacyTagOffTopic {
			c.Metadata.OffTopic = true
			continue
		}
		c.Tags = append(c.Tags, models.CommentTag{Type: tag.Tag.Name, CreatedAt: tag.CreatedAt})
	}
	if legacy.Metadata.Source == models.ImportSource {
		c.Metadata.Source = models.ImportSource
	}
	return c
}
