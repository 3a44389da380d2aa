package transform

import (
	"testing"
	"time"

	"talkmigrate/internal/canonical"
	"talkmigrate/internal/models"
	"talkmigrate/internal/schema"
	"talkmigrate/internal/structures"
	"talkmigrate/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const site = "https://www.angrymetalguy.com"

var scope = Scope{TenantID: "tenant-1", SiteID: "site-1"}

func newTransformer(t *testing.T) (*Transformer, *testutil.MockLogger) {
	t.Helper()
	logger := &testutil.MockLogger{}
	conf := &structures.Config{Site: structures.SiteConfig{Host: "www.angrymetalguy.com"}}
	tr := NewTransformer(scope, schema.NewValidator(), canonical.NewCanonicalizer(conf, testutil.NewMockCache()), logger,
		WithClock(func() time.Time { return testutil.At(100) }),
		WithIDGenerator(testutil.Sequence("id")),
	)
	return tr, logger
}

// docs passes fixtures through bson so they look like driver output.
func docs(t *testing.T, in ...models.Document) []models.Document {
	t.Helper()
	out := make([]models.Document, 0, len(in))
	for _, d := range in {
		data, err := bson.Marshal(d)
		require.NoError(t, err)
		var raw bson.D
		require.NoError(t, bson.Unmarshal(data, &raw))
		doc, err := models.NewDocument(raw)
		require.NoError(t, err)
		out = append(out, doc)
	}
	return out
}

type world struct {
	report   *models.Report
	stories  *StorySet
	users    *UserSet
	agg      *Aggregator
	site     *models.CommentCounts
	comments *CommentSet
}

// build runs stories and users and prepares the aggregator.
func build(t *testing.T, tr *Transformer, stories, users []models.Document) *world {
	t.Helper()
	w := &world{report: &models.Report{}, site: &models.CommentCounts{}}
	var err error
	w.stories, err = tr.Stories(stories, w.report)
	require.NoError(t, err)
	w.users, err = tr.Users(users, w.report)
	require.NoError(t, err)
	w.agg = NewAggregator(w.stories.Index, w.users.Index, w.site)
	return w
}
