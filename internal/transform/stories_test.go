package transform

import (
	"testing"

	"talkmigrate/internal/canonical"
	"talkmigrate/internal/models"
	"talkmigrate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStories_Mapping(t *testing.T) {
	tr, _ := newTransformer(t)
	report := &models.Report{}

	set, err := tr.Stories(docs(t,
		testutil.OrganicStory("s1", "http://www.angrymetalguy.com/review/"),
		testutil.ImportedStory("s2", site+"/old/"),
	), report)
	require.NoError(t, err)
	require.Len(t, set.Stories, 2)

	s1 := set.Index["s1"]
	assert.Equal(t, site+"/review/", s1.URL)
	assert.Equal(t, "tenant-1", s1.TenantID)
	assert.Equal(t, "site-1", s1.SiteID)
	assert.Equal(t, "Review: s1", s1.Metadata.Title)
	require.NotNil(t, s1.Metadata.Author)
	assert.Equal(t, "Steel Druhm", *s1.Metadata.Author)
	require.NotNil(t, s1.ScrapedAt)
	assert.True(t, testutil.At(1).Equal(*s1.ScrapedAt))
	assert.Nil(t, s1.LastCommentedAt)
	assert.Equal(t, models.CommentCounts{}, s1.CommentCounts)

	s2 := set.Index["s2"]
	assert.Equal(t, models.ImportSource, s2.Metadata.Source)
	assert.Nil(t, s2.ScrapedAt)
	assert.Nil(t, s2.Metadata.PublishedAt)

	assert.Equal(t, models.CollectionReport{Read: 2, Migrated: 2}, report.Stories)
	assert.Equal(t, 1, report.URLsRewritten)
}

func TestStories_SkipsPlaceholders(t *testing.T) {
	tr, _ := newTransformer(t)
	report := &models.Report{}
	notFound := testutil.OrganicStory("s2", site+"/404/")
	notFound["title"] = "Page Not Found - Angry Metal Guy"

	set, err := tr.Stories(docs(t,
		testutil.PlaceholderStory("s1", site+"/a/"),
		notFound,
		testutil.OrganicStory("s3", site+"/b/"),
	), report)
	require.NoError(t, err)
	assert.Len(t, set.Stories, 1)
	assert.Equal(t, models.CollectionReport{Read: 3, Migrated: 1, Skipped: 2}, report.Stories)
	_, ok := set.Lookup("s1")
	assert.False(t, ok)
}

func TestStories_PlaceholderRedirectsToLiveStory(t *testing.T) {
	tr, _ := newTransformer(t)
	report := &models.Report{}

	set, err := tr.Stories(docs(t,
		testutil.PlaceholderStory("p1", "http://www.angrymetalguy.com/a/"),
		testutil.OrganicStory("s1", site+"/a/"),
	), report)
	require.NoError(t, err)

	story, ok := set.Lookup("p1")
	require.True(t, ok)
	assert.Equal(t, "s1", story.ID)
	assert.Equal(t, 0, report.Stories.Dropped)
}

func TestStories_DuplicateURLs(t *testing.T) {
	tr, logger := newTransformer(t)
	report := &models.Report{}

	set, err := tr.Stories(docs(t,
		testutil.OrganicStory("s2", site+"/café"),
		testutil.OrganicStory("s3", site+"/caf%C3%A9"),
	), report)
	require.NoError(t, err)

	require.Len(t, set.Stories, 1)
	assert.Equal(t, "s3", set.Stories[0].ID)
	assert.Equal(t, canonical.Redirects{"s2": "s3"}, set.Redirects)
	story, ok := set.Lookup("s2")
	require.True(t, ok)
	assert.Equal(t, "s3", story.ID)

	assert.Equal(t, models.CollectionReport{Read: 2, Migrated: 1, Dropped: 1}, report.Stories)
	assert.Equal(t, 1, report.URLsRedirected)
	assert.Equal(t, 0, report.URLsRewritten)
	assert.Positive(t, logger.Count("info"))
}

func TestStories_ForcedSurvivorTakesCanonicalURL(t *testing.T) {
	tr, _ := newTransformer(t)
	set, err := tr.Stories(docs(t,
		testutil.OrganicStory("s5", "http://www.angrymetalguy.com/café"),
		testutil.OrganicStory("s6", site+"/café"),
	), &models.Report{})
	require.NoError(t, err)

	require.Len(t, set.Stories, 1)
	assert.Equal(t, "s5", set.Stories[0].ID)
	assert.Equal(t, site+"/caf%C3%A9", set.Stories[0].URL)
}

func TestStories_ForeignHost(t *testing.T) {
	tr, _ := newTransformer(t)
	_, err := tr.Stories(docs(t, testutil.OrganicStory("s1", "https://example.com/x/")), &models.Report{})
	var unexpected *models.UnexpectedHost
	require.ErrorAs(t, err, &unexpected)
}
