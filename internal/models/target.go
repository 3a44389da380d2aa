package models

import "time"

// Target collection names in the coral database.
const (
	TargetStories                  = "stories"
	TargetUsers                    = "users"
	TargetComments                 = "comments"
	TargetCommentActions           = "commentActions"
	TargetCommentModerationActions = "commentModerationActions"
	TargetSites                    = "sites"
	TargetTenants                  = "tenants"
)

// ImportSource marks records that came from the wordpress import.
const ImportSource = "wpimport"

type StorySettings struct{}

type StoryMetadata struct {
	Title       string     `bson:"title" json:"title"`
	PublishedAt *time.Time `bson:"publishedAt" json:"publishedAt"`
	Source      string     `bson:"source,omitempty" json:"source,omitempty"`
	Author      *string    `bson:"author,omitempty" json:"author,omitempty"`
	Description *string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       *string    `bson:"image,omitempty" json:"image,omitempty"`
}

type Story struct {
	ID              string        `bson:"id" json:"id" validate:"required"`
	TenantID        string        `bson:"tenantID" json:"tenantID" validate:"required"`
	SiteID          string        `bson:"siteID" json:"siteID" validate:"required"`
	URL             string        `bson:"url" json:"url" validate:"required,url"`
	CommentCounts   CommentCounts `bson:"commentCounts" json:"commentCounts"`
	Settings        StorySettings `bson:"settings" json:"settings"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt" validate:"required"`
	Metadata        StoryMetadata `bson:"metadata" json:"metadata"`
	ScrapedAt       *time.Time    `bson:"scrapedAt" json:"scrapedAt"`
	LastCommentedAt *time.Time    `bson:"lastCommentedAt" json:"lastCommentedAt"`
}

type StatusHistory struct {
	History []any `bson:"history" json:"history"`
}

type ActiveStatus struct {
	Active  bool  `bson:"active" json:"active"`
	History []any `bson:"history" json:"history"`
}

type UserStatus struct {
	Username   StatusHistory `bson:"username" json:"username"`
	Suspension StatusHistory `bson:"suspension" json:"suspension"`
	Ban        ActiveStatus  `bson:"ban" json:"ban"`
	Premod     ActiveStatus  `bson:"premod" json:"premod"`
	Warning    ActiveStatus  `bson:"warning" json:"warning"`
}

// NewUserStatus returns an inactive status with empty histories.
func NewUserStatus() UserStatus {
	return UserStatus{
		Username:   StatusHistory{History: []any{}},
		Suspension: StatusHistory{History: []any{}},
		Ban:        ActiveStatus{History: []any{}},
		Premod:     ActiveStatus{History: []any{}},
		Warning:    ActiveStatus{History: []any{}},
	}
}

type NotificationSettings struct {
	OnReply         bool   `bson:"onReply" json:"onReply"`
	OnFeatured      bool   `bson:"onFeatured" json:"onFeatured"`
	OnModeration    bool   `bson:"onModeration" json:"onModeration"`
	OnStaffReplies  bool   `bson:"onStaffReplies" json:"onStaffReplies"`
	DigestFrequency string `bson:"digestFrequency" json:"digestFrequency" validate:"oneof=NONE HOURLY DAILY"`
}

type Profile struct {
	Type       string `bson:"type" json:"type" validate:"required"`
	ID         string `bson:"id" json:"id" validate:"required"`
	Password   string `bson:"password,omitempty" json:"-"`
	PasswordID string `bson:"passwordID,omitempty" json:"passwordID,omitempty"`
}

type UserMetadata struct {
	Source string `bson:"source,omitempty" json:"source,omitempty"`
}

type User struct {
	ID            string               `bson:"id" json:"id" validate:"required"`
	TenantID      string               `bson:"tenantID" json:"tenantID" validate:"required"`
	Username      string               `bson:"username" json:"username"`
	Role          string               `bson:"role" json:"role" validate:"oneof=ADMIN STAFF COMMENTER MODERATOR"`
	Email         *string              `bson:"email,omitempty" json:"email,omitempty"`
	EmailVerified *bool                `bson:"emailVerified,omitempty" json:"emailVerified,omitempty"`
	Avatar        *string              `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Profiles      []Profile            `bson:"profiles" json:"profiles" validate:"len=1,dive"`
	Tokens        []any                `bson:"tokens" json:"tokens"`
	IgnoredUsers  []string             `bson:"ignoredUsers" json:"ignoredUsers"`
	Status        UserStatus           `bson:"status" json:"status"`
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
	ModeratorNote []any                `bson:"moderatorNotes" json:"moderatorNotes"`
	Digests       []any                `bson:"digests" json:"digests"`
	CommentCounts UserCommentCounts    `bson:"commentCounts" json:"commentCounts"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt" validate:"required"`
	Metadata      UserMetadata         `bson:"metadata" json:"metadata"`
}

type RevisionMetadata struct {
	Nudge     bool `bson:"nudge" json:"nudge"`
	LinkCount int  `bson:"linkCount" json:"linkCount"`
}

type Revision struct {
	ID           string           `bson:"id" json:"id" validate:"required"`
	Body         string           `bson:"body" json:"body"`
	ActionCounts map[string]int   `bson:"actionCounts" json:"actionCounts"`
	Metadata     RevisionMetadata `bson:"metadata" json:"metadata"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
}

type CommentTag struct {
	Type      string    `bson:"type" json:"type"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type CommentMetadata struct {
	OffTopic bool   `bson:"off_topic,omitempty" json:"off_topic,omitempty"`
	Source   string `bson:"source,omitempty" json:"source,omitempty"`
}

type Comment struct {
	ID               string          `bson:"id" json:"id" validate:"required"`
	TenantID         string          `bson:"tenantID" json:"tenantID" validate:"required"`
	StoryID          string          `bson:"storyID" json:"storyID" validate:"required"`
	SiteID           string          `bson:"siteID" json:"siteID" validate:"required"`
	AuthorID         *string         `bson:"authorID" json:"authorID"`
	ParentID         string          `bson:"parentID,omitempty" json:"parentID,omitempty"`
	ParentRevisionID NullableID      `bson:"parentRevisionID,omitempty" json:"parentRevisionID,omitempty"`
	AncestorIDs      []string        `bson:"ancestorIDs" json:"ancestorIDs"`
	ChildIDs         []string        `bson:"childIDs" json:"childIDs"`
	ChildCount       int             `bson:"childCount" json:"childCount"`
	Revisions        []Revision      `bson:"revisions" json:"revisions" validate:"max=1,dive"`
	Status           string          `bson:"status" json:"status" validate:"oneof=APPROVED NONE PREMOD REJECTED SYSTEM_WITHHELD"`
	Tags             []CommentTag    `bson:"tags" json:"tags"`
	ActionCounts     map[string]int  `bson:"actionCounts" json:"actionCounts"`
	Metadata         CommentMetadata `bson:"metadata" json:"metadata"`
	CreatedAt        time.Time       `bson:"createdAt" json:"createdAt" validate:"required"`
	DeletedAt        *time.Time      `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// CurrentRevision returns the latest revision, or nil for body-less comments.
func (c *Comment) CurrentRevision() *Revision {
	if len(c.Revisions) == 0 {
		return nil
	}
	return &c.Revisions[len(c.Revisions)-1]
}

// Counted reports whether the comment contributes to status counters.
func (c *Comment) Counted() bool {
	return c.DeletedAt == nil
}

type CommentAction struct {
	ID                string    `bson:"id" json:"id" validate:"required"`
	TenantID          string    `bson:"tenantID" json:"tenantID" validate:"required"`
	SiteID            string    `bson:"siteID" json:"siteID" validate:"required"`
	StoryID           string    `bson:"storyID" json:"storyID" validate:"required"`
	CommentID         string    `bson:"commentID" json:"commentID" validate:"required"`
	CommentRevisionID string    `bson:"commentRevisionID" json:"commentRevisionID" validate:"required"`
	ActionType        string    `bson:"actionType" json:"actionType" validate:"eq=REACTION"`
	UserID            string    `bson:"userID" json:"userID"`
	AdditionalDetails *string   `bson:"additionalDetails" json:"additionalDetails"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// Site is the pre-existing target site record. Fields other than the
// counters are carried through untouched on replace.
type Site struct {
	ID            string
	TenantID      string
	CommentCounts CommentCounts
	Document      Document
}

// ToDocument returns the replacement record with the rebuilt counters.
func (s *Site) ToDocument() Document {
	doc := make(Document, len(s.Document)+1)
	for k, v := range s.Document {
		doc[k] = v
	}
	doc["commentCounts"] = s.CommentCounts
	return doc
}
