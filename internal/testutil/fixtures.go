package testutil

import (
	"strconv"
	"time"

	"talkmigrate/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Epoch is the base timestamp of every fixture.
var Epoch = time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)

// At returns Epoch shifted by n minutes.
func At(n int) time.Time {
	return Epoch.Add(time.Duration(n) * time.Minute)
}

// OrganicStory is a scraped legacy asset with full editorial fields.
func OrganicStory(id, url string) models.Document {
	return models.Document{
		"_id":              bson.NewObjectID(),
		"id":               id,
		"url":              url,
		"title":            "Review: " + id,
		"scraped":          At(1),
		"metadata":         map[string]any{},
		"created_at":       At(0),
		"publication_date": At(-60),
		"closedAt":         nil,
		"closedMessage":    nil,
		"settings":         map[string]any{},
		"tags":             []any{},
		"type":             "assets",
		"updated_at":       At(2),
		"author":           "Steel Druhm",
		"description":      "A review",
		"image":            "https://cdn.example.com/" + id + ".jpg",
		"modified_date":    nil,
		"section":          "Reviews",
	}
}

// ImportedStory is an unscraped asset from the wordpress import.
func ImportedStory(id, url string) models.Document {
	return models.Document{
		"_id":              bson.NewObjectID(),
		"id":               id,
		"url":              url,
		"title":            "Imported " + id,
		"scraped":          nil,
		"metadata":         map[string]any{"source": models.ImportSource},
		"created_at":       At(0),
		"publication_date": nil,
	}
}

// PlaceholderStory is an unscraped, sourceless row that never held content.
func PlaceholderStory(id, url string) models.Document {
	doc := OrganicStory(id, url)
	doc["scraped"] = nil
	return doc
}

func historyEntry(status any, extra map[string]any) map[string]any {
	e := map[string]any{"_id": bson.NewObjectID(), "status": status, "created_at": At(0)}
	for k, v := range extra {
		e[k] = v
	}
	return e
}

// LocalUser is an organic user with a local (email) profile.
func LocalUser(id string, confirmed bool) models.Document {
	profile := map[string]any{"id": id + "@example.com", "provider": models.ProviderLocal}
	if confirmed {
		profile["metadata"] = map[string]any{"confirmed_at": At(5)}
	}
	return models.Document{
		"_id": bson.NewObjectID(),
		"id":  id,
		"status": map[string]any{
			"username": map[string]any{
				"status":  "SET",
				"history": []any{historyEntry("SET", map[string]any{"assigned_by": nil})},
			},
			"banned": map[string]any{
				"status":  false,
				"history": []any{},
			},
			"suspension": map[string]any{
				"until":   nil,
				"history": []any{},
			},
			"alwaysPremod": map[string]any{
				"status":  false,
				"history": []any{},
			},
		},
		"role":              "COMMENTER",
		"ignoresUsers":      []any{},
		"username":          "User" + id,
		"lowercaseUsername": "user" + id,
		"password":          "$2a$10$hash" + id,
		"profiles":          []any{profile},
		"tokens":            []any{},
		"tags":              []any{},
		"created_at":        At(0),
		"updated_at":        At(1),
		"__v":               int32(0),
	}
}

// SocialUser is an organic user signed in through google or facebook.
func SocialUser(id, provider string) models.Document {
	doc := LocalUser(id, false)
	delete(doc, "password")
	doc["profiles"] = []any{map[string]any{"id": "social-" + id, "provider": provider}}
	return doc
}

// ImportedUser is a disqus user from the wordpress import.
func ImportedUser(id string) models.Document {
	return models.Document{
		"_id":               bson.NewObjectID(),
		"id":                id,
		"username":          "Imported" + id,
		"lowercaseUsername": "imported" + id,
		"profiles":          []any{map[string]any{"provider": "disqus", "id": "disqus-" + id}},
		"metadata":          map[string]any{"source": models.ImportSource},
		"created_at":        At(0),
	}
}

// OrganicComment is a live comment written on the platform.
func OrganicComment(id, storyID, authorID string, parentID any, at int) models.Document {
	return models.Document{
		"_id":          bson.NewObjectID(),
		"status":       models.LegacyStatusAccepted,
		"id":           id,
		"author_id":    authorID,
		"parent_id":    parentID,
		"created_at":   At(at),
		"updated_at":   At(at),
		"asset_id":     storyID,
		"body":         "body " + id,
		"reply_count":  int32(0),
		"body_history": []any{map[string]any{"_id": bson.NewObjectID(), "body": "body " + id, "created_at": At(at)}},
		"tags":         []any{},
		"metadata":     map[string]any{"richTextBody": "<p>body " + id + "</p>"},
		"__v":          int32(0),
	}
}

// Tag builds a legacy tag link.
func Tag(name string, at int) map[string]any {
	return map[string]any{
		"assigned_by": "moderator",
		"tag": map[string]any{
			"permissions": map[string]any{
				"public": true,
				"roles":  []any{"ADMIN", "MODERATOR"},
				"self":   false,
			},
			"models":     []any{"COMMENTS"},
			"name":       name,
			"created_at": At(at),
		},
		"created_at": At(at),
	}
}

// ImportedComment is a comment from the wordpress import.
func ImportedComment(id, storyID, authorID string, parentID any, at int) models.Document {
	return models.Document{
		"_id":         bson.NewObjectID(),
		"status":      models.LegacyStatusAccepted,
		"id":          id,
		"author_id":   authorID,
		"parent_id":   parentID,
		"created_at":  At(at),
		"updated_at":  At(at),
		"asset_id":    storyID,
		"body":        "imported " + id,
		"reply_count": int32(0),
		"metadata":    map[string]any{"richTextBody": "imported " + id, "source": models.ImportSource},
	}
}

// DeletedComment is a soft-deleted comment with body and author nulled.
func DeletedComment(id, storyID string, parentID any, at, deletedAt int) models.Document {
	return models.Document{
		"_id":            bson.NewObjectID(),
		"id":             id,
		"body":           nil,
		"body_history":   []any{},
		"asset_id":       storyID,
		"author_id":      nil,
		"status_history": []any{},
		"status":         models.LegacyStatusAccepted,
		"parent_id":      parentID,
		"reply_count":    int32(0),
		"action_counts":  map[string]any{},
		"tags":           []any{},
		"metadata":       map[string]any{},
		"deleted_at":     At(deletedAt),
		"created_at":     At(at),
		"updated_at":     At(deletedAt),
	}
}

// RespectAction is a legacy RESPECT reaction on a comment.
func RespectAction(id, commentID, userID string, at int) models.Document {
	return models.Document{
		"_id":         bson.NewObjectID(),
		"action_type": models.LegacyActionRespect,
		"group_id":    nil,
		"item_id":     commentID,
		"item_type":   "COMMENTS",
		"user_id":     userID,
		"__v":         int32(0),
		"created_at":  At(at),
		"id":          id,
		"metadata":    map[string]any{},
		"updated_at":  At(at),
	}
}

// FlagAction is a legacy flag, which the target does not model.
func FlagAction(id, commentID, userID string) models.Document {
	return models.Document{
		"_id":         bson.NewObjectID(),
		"action_type": "FLAG",
		"group_id":    "COMMENT_OFFENSIVE",
		"item_id":     commentID,
		"item_type":   "COMMENTS",
		"user_id":     userID,
		"created_at":  At(0),
		"id":          id,
		"metadata":    map[string]any{"message": "rude"},
	}
}

// Sequence returns a deterministic id generator: prefix-1, prefix-2, ...
func Sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
