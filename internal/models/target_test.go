package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNullableID_BSON(t *testing.T) {
	type holder struct {
		Ref NullableID `bson:"ref,omitempty"`
	}
	tests := []struct {
		name string
		in   NullableID
		want bson.M
	}{
		{"absent", NullableID{}, bson.M{}},
		{"null", NullID(), bson.M{"ref": nil}},
		{"set", SomeID("rev-1"), bson.M{"ref": "rev-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(holder{Ref: tt.in})
			require.NoError(t, err)
			var out bson.M
			require.NoError(t, bson.Unmarshal(data, &out))
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNullableID_JSON(t *testing.T) {
	data, err := json.Marshal(SomeID("rev-1"))
	require.NoError(t, err)
	assert.Equal(t, `"rev-1"`, string(data))

	data, err = json.Marshal(NullID())
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))

	var n NullableID
	require.NoError(t, json.Unmarshal([]byte(`"rev-2"`), &n))
	assert.Equal(t, SomeID("rev-2"), n)
}

func TestStatusCounts(t *testing.T) {
	var s StatusCounts
	for _, status := range []string{StatusApproved, StatusApproved, StatusNone, StatusPremod, StatusRejected, StatusSystemWithheld} {
		require.NoError(t, s.Inc(status))
	}
	assert.Equal(t, 2, s.Get(StatusApproved))
	assert.Equal(t, 1, s.Get(StatusSystemWithheld))
	assert.Equal(t, 0, s.Get("ACCEPTED"))
	assert.Equal(t, 6, s.Total())
	assert.Error(t, s.Inc("ACCEPTED"))
	assert.Equal(t, 6, s.Total())
}

func TestComment_CurrentRevision(t *testing.T) {
	c := &Comment{}
	assert.Nil(t, c.CurrentRevision())
	assert.True(t, c.Counted())

	c.Revisions = []Revision{{ID: "r1"}, {ID: "r2"}}
	assert.Equal(t, "r2", c.CurrentRevision().ID)
}

func TestSite_ToDocumentKeepsOtherFields(t *testing.T) {
	site := &Site{
		ID:       "site-1",
		Document: Document{"id": "site-1", "name": "AMG", "commentCounts": "stale"},
	}
	site.CommentCounts.Status.Approved = 3

	doc := site.ToDocument()
	assert.Equal(t, "AMG", doc["name"])
	assert.Equal(t, site.CommentCounts, doc["commentCounts"])
	assert.Equal(t, "stale", site.Document["commentCounts"])
}

func TestReport_AddDangling(t *testing.T) {
	r := &Report{}
	r.AddDangling(&DanglingReference{Entity: "comment", RecordID: "c1", Field: "parent_id", Target: "comment c0"})
	require.Len(t, r.Dangling, 1)
	assert.Equal(t, "comment c1: parent_id references missing comment c0", r.Dangling[0].Error())
}
