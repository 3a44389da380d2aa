package models

import "time"

// SiteSummary is the part of the site record a migration rewrites.
type SiteSummary struct {
	ID            string        `json:"id"`
	CommentCounts CommentCounts `json:"commentCounts"`
}

// Snapshot is the complete transformed result set of one run.
type Snapshot struct {
	CreatedAt time.Time        `json:"createdAt"`
	TenantID  string           `json:"tenantID"`
	Site      SiteSummary      `json:"site"`
	Report    *Report          `json:"report"`
	Stories   []*Story         `json:"stories"`
	Users     []*User          `json:"users"`
	Comments  []*Comment       `json:"comments"`
	Actions   []*CommentAction `json:"actions"`
}
