package transform

import (
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"
)

// Actions keeps RESPECT actions as reactions bound to the comment's current
// revision. Flags and disagreements are not modelled by the target.
func (t *Transformer) Actions(docs []models.Document, comments *CommentSet, users *UserSet, agg *Aggregator, report *models.Report) ([]*models.CommentAction, error) {
	var actions []*models.CommentAction

	for _, doc := range docs {
		report.Actions.Read++

		variant, err := t.validator.Validate(schema.EntityAction, doc)
		if err != nil {
			return nil, err
		}
		if variant != schema.VariantRespect {
			report.Actions.Skipped++
			continue
		}
		var legacy models.LegacyAction
		if err := doc.Decode(&legacy); err != nil {
			return nil, err
		}

		comment, ok := comments.Index[legacy.ItemID]
		if !ok {
			report.Actions.Dropped++
			t.logger.Debugf(providers.TypeAction, "Dropping action %s on missing comment %s", legacy.ID, legacy.ItemID)
			continue
		}
		rev := comment.CurrentRevision()
		if rev == nil {
			report.Actions.Dropped++
			t.logger.Debugf(providers.TypeAction, "Dropping action %s on deleted comment %s", legacy.ID, legacy.ItemID)
			continue
		}
		if _, ok := users.Index[legacy.UserID]; !ok && !users.IsDeleted(legacy.UserID) {
			t.dangling(report, providers.TypeAction, &models.DanglingReference{
				Entity: "action", RecordID: legacy.ID, Field: "user_id", Target: "user " + legacy.UserID,
			})
		}

		a := &models.CommentAction{
			ID:                legacy.ID,
			TenantID:          t.scope.TenantID,
			SiteID:            t.scope.SiteID,
			StoryID:           comment.StoryID,
			CommentID:         comment.ID,
			CommentRevisionID: rev.ID,
			ActionType:        models.ActionReaction,
			UserID:            legacy.UserID,
			CreatedAt:         legacy.CreatedAt,
		}
		if err := agg.AddReaction(a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	report.Actions.Migrated = len(actions)
	t.logger.Infof(providers.TypeAction, "Migrated %d reactions, skipped %d, dropped %d", len(actions), report.Actions.Skipped, report.Actions.Dropped)
	return actions, nil
}
