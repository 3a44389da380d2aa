package models

import "time"

// Legacy collection names in the talk database.
const (
	LegacyStories  = "assets"
	LegacyUsers    = "users"
	LegacyComments = "comments"
	LegacyActions  = "actions"
)

const (
	LegacyStatusAccepted = "ACCEPTED"
	LegacyActionRespect  = "RESPECT"
	LegacyTagOffTopic    = "OFF_TOPIC"
	ProviderLocal        = "local"
)

type LegacyStoryMetadata struct {
	Source string `bson:"source,omitempty"`
}

type LegacyStory struct {
	ID              string              `bson:"id"`
	URL             string              `bson:"url"`
	Title           string              `bson:"title"`
	Scraped         *time.Time          `bson:"scraped"`
	Metadata        LegacyStoryMetadata `bson:"metadata"`
	CreatedAt       time.Time           `bson:"created_at"`
	PublicationDate *time.Time          `bson:"publication_date"`
	Author          *string             `bson:"author,omitempty"`
	Description     *string             `bson:"description,omitempty"`
	Image           *string             `bson:"image,omitempty"`
	Section         *string             `bson:"section,omitempty"`
}

type LegacyFlagStatus struct {
	Status bool `bson:"status"`
}

// LegacyUserStatus keeps only the booleans the target schema models; histories are dropped.
type LegacyUserStatus struct {
	Banned       LegacyFlagStatus `bson:"banned"`
	AlwaysPremod LegacyFlagStatus `bson:"alwaysPremod"`
}

type LegacyProfileMetadata struct {
	ConfirmedAt *time.Time `bson:"confirmed_at,omitempty"`
}

type LegacyProfile struct {
	ID       string                 `bson:"id"`
	Provider string                 `bson:"provider"`
	Metadata *LegacyProfileMetadata `bson:"metadata,omitempty"`
}

type LegacyNotificationSettings struct {
	OnReply         *bool   `bson:"onReply,omitempty"`
	OnFeatured      *bool   `bson:"onFeatured,omitempty"`
	DigestFrequency *string `bson:"digestFrequency,omitempty"`
}

type LegacyNotifications struct {
	Settings LegacyNotificationSettings `bson:"settings"`
}

type LegacyUserMetadata struct {
	Source                string               `bson:"source,omitempty"`
	Avatar                *string              `bson:"avatar,omitempty"`
	Notifications         *LegacyNotifications `bson:"notifications,omitempty"`
	ScheduledDeletionDate *time.Time           `bson:"scheduledDeletionDate,omitempty"`
}

type LegacyUser struct {
	ID           string             `bson:"id"`
	Username     string             `bson:"username"`
	Role         string             `bson:"role,omitempty"`
	Password     string             `bson:"password,omitempty"`
	Status       *LegacyUserStatus  `bson:"status,omitempty"`
	IgnoresUsers []string           `bson:"ignoresUsers,omitempty"`
	Profiles     []LegacyProfile    `bson:"profiles"`
	Metadata     LegacyUserMetadata `bson:"metadata"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// Imported reports whether the user came from the wordpress import.
func (u *LegacyUser) Imported() bool {
	return u.Metadata.Source == ImportSource
}

type LegacyTag struct {
	Name string `bson:"name"`
}

type LegacyTagLink struct {
	Tag       LegacyTag `bson:"tag"`
	CreatedAt time.Time `bson:"created_at"`
}

type LegacyCommentMetadata struct {
	RichTextBody string `bson:"richTextBody,omitempty"`
	Source       string `bson:"source,omitempty"`
}

type LegacyComment struct {
	ID           string                `bson:"id"`
	Status       string                `bson:"status"`
	AuthorID     *string               `bson:"author_id"`
	ParentID     *string               `bson:"parent_id"`
	AssetID      string                `bson:"asset_id"`
	Body         *string               `bson:"body"`
	ActionCounts map[string]any        `bson:"action_counts,omitempty"`
	Tags         []LegacyTagLink       `bson:"tags,omitempty"`
	Metadata     LegacyCommentMetadata `bson:"metadata"`
	DeletedAt    *time.Time            `bson:"deleted_at,omitempty"`
	CreatedAt    time.Time             `bson:"created_at"`
}

type LegacyAction struct {
	ID         string    `bson:"id"`
	ActionType string    `bson:"action_type"`
	ItemID     string    `bson:"item_id"`
	ItemType   string    `bson:"item_type"`
	UserID     string    `bson:"user_id"`
	CreatedAt  time.Time `bson:"created_at"`
}
