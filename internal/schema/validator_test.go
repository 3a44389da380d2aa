package schema

import (
	"testing"

	"talkmigrate/internal/models"
	"talkmigrate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const site = "https://www.angrymetalguy.com"

func TestValidate_Variants(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		doc     models.Document
		variant string
	}{
		{"organic story", EntityStory, testutil.OrganicStory("s1", site+"/a/"), VariantOrganic},
		{"imported story", EntityStory, testutil.ImportedStory("s2", site+"/b/"), VariantImported},
		{"local user", EntityUser, testutil.LocalUser("u1", true), VariantOrganic},
		{"unconfirmed local user", EntityUser, testutil.LocalUser("u2", false), VariantOrganic},
		{"social user", EntityUser, testutil.SocialUser("u3", "google"), VariantOrganic},
		{"imported user", EntityUser, testutil.ImportedUser("u4"), VariantImported},
		{"organic comment", EntityComment, testutil.OrganicComment("c1", "s1", "u1", nil, 0), VariantOrganic},
		{"reply", EntityComment, testutil.OrganicComment("c2", "s1", "u1", "c1", 1), VariantOrganic},
		{"imported comment", EntityComment, testutil.ImportedComment("c3", "s1", "u4", nil, 0), VariantImported},
		{"deleted comment", EntityComment, testutil.DeletedComment("c4", "s1", nil, 0, 5), VariantDeleted},
		{"respect", EntityAction, testutil.RespectAction("a1", "c1", "u1", 0), VariantRespect},
		{"flag", EntityAction, testutil.FlagAction("a2", "c1", "u1"), VariantIgnored},
	}
	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant, err := v.Validate(tt.entity, tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, variant)
		})
	}
}

func TestValidate_TaggedComment(t *testing.T) {
	doc := testutil.OrganicComment("c1", "s1", "u1", nil, 0)
	doc["tags"] = []any{testutil.Tag("OFF_TOPIC", 1), testutil.Tag("FEATURED", 2)}
	doc["action_counts"] = map[string]any{"respect": int32(3), "flag": int32(1)}

	variant, err := NewValidator().Validate(EntityComment, doc)
	require.NoError(t, err)
	assert.Equal(t, VariantOrganic, variant)
}

func TestValidate_UserMetadata(t *testing.T) {
	doc := testutil.LocalUser("u1", true)
	doc["metadata"] = map[string]any{
		"avatar":                "data:image/png;base64,AAAA",
		"notifications":         map[string]any{"settings": map[string]any{"onReply": true, "digestFrequency": "DAILY"}},
		"scheduledDeletionDate": testutil.At(10),
	}

	variant, err := NewValidator().Validate(EntityUser, doc)
	require.NoError(t, err)
	assert.Equal(t, VariantOrganic, variant)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		doc    func() models.Document
		field  string
	}{
		{"missing title", EntityStory, func() models.Document {
			d := testutil.OrganicStory("s1", site+"/a/")
			delete(d, "title")
			return d
		}, "title: required key missing"},
		{"unknown story key", EntityStory, func() models.Document {
			d := testutil.OrganicStory("s1", site+"/a/")
			d["views"] = int32(3)
			return d
		}, "views: unexpected key"},
		{"relative url", EntityStory, func() models.Document {
			d := testutil.ImportedStory("s1", "/a/")
			return d
		}, "url: expected url"},
		{"wrong import source", EntityStory, func() models.Document {
			d := testutil.ImportedStory("s1", site+"/a/")
			d["metadata"] = map[string]any{"source": "disqus"}
			return d
		}, "metadata.source"},
		{"two profiles", EntityUser, func() models.Document {
			d := testutil.LocalUser("u1", false)
			d["profiles"] = append(d["profiles"].([]any), map[string]any{"id": "x", "provider": "google"})
			return d
		}, "profiles: expected exactly one profile, got 2"},
		{"unknown role", EntityUser, func() models.Document {
			d := testutil.LocalUser("u1", false)
			d["role"] = "OWNER"
			return d
		}, "role: expected one of"},
		{"string reply count", EntityComment, func() models.Document {
			d := testutil.OrganicComment("c1", "s1", "u1", nil, 0)
			d["reply_count"] = "0"
			return d
		}, "reply_count: expected int, got string"},
		{"unknown tag", EntityComment, func() models.Document {
			d := testutil.OrganicComment("c1", "s1", "u1", nil, 0)
			d["tags"] = []any{testutil.Tag("SPAM", 0)}
			return d
		}, "tags[0].tag.name"},
		{"unknown action type", EntityAction, func() models.Document {
			d := testutil.RespectAction("a1", "c1", "u1", 0)
			d["action_type"] = "LIKE"
			return d
		}, "action_type"},
	}
	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.entity, tt.doc())
			var violation *models.SchemaViolation
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, string(tt.entity), violation.Entity)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_ClosestVariantIsReported(t *testing.T) {
	d := testutil.OrganicStory("s1", site+"/a/")
	d["section"] = int32(1)

	_, err := NewValidator().Validate(EntityStory, d)
	var violation *models.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, VariantOrganic, violation.Variant)
	assert.Equal(t, []string{"section: expected string, got int32"}, violation.Fields)
	assert.Equal(t, "s1", violation.RecordID)
}

func TestValidate_RecordIDFallsBackToObjectID(t *testing.T) {
	oid := bson.NewObjectID()
	_, err := NewValidator().Validate(EntityAction, models.Document{"_id": oid})
	var violation *models.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, oid.Hex(), violation.RecordID)
}

func TestValidate_UnknownEntity(t *testing.T) {
	_, err := NewValidator().Validate(Entity("tokens"), models.Document{"id": "t1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}

func TestAny_ReportsClosestMiss(t *testing.T) {
	r := Any(Str, Doc(Required("a", Str), Required("b", Str)))
	assert.Nil(t, r("x", "ok"))
	assert.Equal(t, []string{"x: expected string, got int"}, r("x", 3))
}

func TestShapeExtend_ReplacesAndAppends(t *testing.T) {
	base := Shape{Fields: []Field{Required("a", Str), Required("b", Str)}}
	ext := base.Extend("ext", Required("b", Int), Optional("c", Bool))

	assert.Equal(t, "ext", ext.Name)
	require.Len(t, ext.Fields, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{ext.Fields[0].Name, ext.Fields[1].Name, ext.Fields[2].Name})
	assert.Nil(t, ext.Check("", map[string]any{"a": "x", "b": 1}))
	assert.Len(t, base.Check("", map[string]any{"a": "x", "b": 1}), 1)
}
