package transform

import (
	"strings"

	"talkmigrate/internal/canonical"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"
)

// StorySet is the deduplicated story working set.
type StorySet struct {
	Stories   []*models.Story
	Index     map[string]*models.Story
	Redirects canonical.Redirects
}

// Lookup resolves id through the redirect map before the index.
func (s *StorySet) Lookup(id string) (*models.Story, bool) {
	story, ok := s.Index[s.Redirects.Resolve(id)]
	return story, ok
}

// Stories transforms the legacy assets and collapses records sharing a canonical URL.
func (t *Transformer) Stories(docs []models.Document, report *models.Report) (*StorySet, error) {
	dedup := canonical.NewDeduplicator()
	var ordered []*models.Story
	index := make(map[string]*models.Story, len(docs))

	for _, doc := range docs {
		report.Stories.Read++

		if t.spurious(doc) {
			report.Stories.Skipped++
			// a placeholder may still be the target of comments; let it redirect
			if raw, ok := doc.String("url"); ok {
				res, err := t.canonicalizer.Canonicalize(raw)
				if err != nil {
					return nil, err
				}
				dedup.Add(doc.ID(), raw, res.URL, false)
			}
			t.logger.Debugf(providers.TypeStory, "Skipping placeholder story %s", doc.ID())
			continue
		}

		var legacy models.LegacyStory
		if _, err := t.validate(schema.EntityStory, doc, &legacy); err != nil {
			return nil, err
		}
		res, err := t.canonicalizer.Canonicalize(legacy.URL)
		if err != nil {
			return nil, err
		}

		story := t.story(&legacy)
		dedup.Add(story.ID, legacy.URL, res.URL, true)
		ordered = append(ordered, story)
		index[story.ID] = story
	}

	resolution := dedup.Resolve()
	for id, url := range resolution.Rewrites {
		if story, ok := index[id]; ok {
			t.logger.Infof(providers.TypeStory, "Rewrote %s to %s", story.URL, url)
			story.URL = url
		}
	}
	for _, ev := range resolution.Events {
		if ev.Forced {
			t.logger.Infof(providers.TypeStory, "No stored URL matched %s, forced story %s onto it", ev.CanonicalURL, ev.SurvivorID)
		}
		t.logger.Infof(providers.TypeStory, "Mapped stories %s to %s (%s)", strings.Join(ev.MergedIDs, ","), ev.SurvivorID, ev.CanonicalURL)
	}
	for _, id := range resolution.Removed {
		delete(index, id)
	}

	set := &StorySet{Index: index, Redirects: resolution.Redirects}
	for _, story := range ordered {
		if _, ok := index[story.ID]; ok {
			set.Stories = append(set.Stories, story)
		}
	}

	report.Stories.Dropped += len(resolution.Removed)
	report.Stories.Migrated = len(set.Stories)
	report.URLsRewritten = resolution.Rewritten
	report.URLsRedirected = resolution.Redirected
	t.logger.Infof(providers.TypeStory, "Rewrote %d URLs, redirected %d duplicate groups", resolution.Rewritten, resolution.Redirected)
	return set, nil
}

// spurious matches placeholder rows: never scraped and not imported, or a
// captured "not found" page.
func (t *Transformer) spurious(doc models.Document) bool {
	_, hasSource := doc.Sub("metadata")["source"]
	if doc["scraped"] == nil && !hasSource {
		return true
	}
	title, _ := doc.String("title")
	return t.notFoundPrefix != "" && strings.HasPrefix(title, t.notFoundPrefix)
}

func (t *Transformer) story(legacy *models.LegacyStory) *models.Story {
	return &models.Story{
		ID:        legacy.ID,
		TenantID:  t.scope.TenantID,
		SiteID:    t.scope.SiteID,
		URL:       legacy.URL,
		CreatedAt: legacy.CreatedAt,
		Metadata: models.StoryMetadata{
			Title:       legacy.Title,
			PublishedAt: legacy.PublicationDate,
			Source:      legacy.Metadata.Source,
			Author:      legacy.Author,
			Description: legacy.Description,
			Image:       legacy.Image,
		},
		ScrapedAt: legacy.Scraped,
	}
}
