package models

import "fmt"

// Target comment statuses.
const (
	StatusApproved       = "APPROVED"
	StatusNone           = "NONE"
	StatusPremod         = "PREMOD"
	StatusRejected       = "REJECTED"
	StatusSystemWithheld = "SYSTEM_WITHHELD"
)

const ActionReaction = "REACTION"

type StatusCounts struct {
	Approved       int `bson:"APPROVED" json:"APPROVED"`
	None           int `bson:"NONE" json:"NONE"`
	Premod         int `bson:"PREMOD" json:"PREMOD"`
	Rejected       int `bson:"REJECTED" json:"REJECTED"`
	SystemWithheld int `bson:"SYSTEM_WITHHELD" json:"SYSTEM_WITHHELD"`
}

// Inc bumps the bucket for status; unknown statuses are an error rather than a new bucket.
func (s *StatusCounts) Inc(status string) error {
	switch status {
	case StatusApproved:
		s.Approved++
	case StatusNone:
		s.None++
	case StatusPremod:
		s.Premod++
	case StatusRejected:
		s.Rejected++
	case StatusSystemWithheld:
		s.SystemWithheld++
	default:
		return fmt.Errorf("unknown comment status %q", status)
	}
	return nil
}

func (s StatusCounts) Get(status string) int {
	switch status {
	case StatusApproved:
		return s.Approved
	case StatusNone:
		return s.None
	case StatusPremod:
		return s.Premod
	case StatusRejected:
		return s.Rejected
	case StatusSystemWithheld:
		return s.SystemWithheld
	}
	return 0
}

func (s StatusCounts) Total() int {
	return s.Approved + s.None + s.Premod + s.Rejected + s.SystemWithheld
}

type ActionCounts struct {
	Reaction int `bson:"REACTION" json:"REACTION"`
}

type ModerationQueues struct {
	Unmoderated int `bson:"unmoderated" json:"unmoderated"`
	Reported    int `bson:"reported" json:"reported"`
	Pending     int `bson:"pending" json:"pending"`
}

type ModerationQueueCounts struct {
	Total  int              `bson:"total" json:"total"`
	Queues ModerationQueues `bson:"queues" json:"queues"`
}

// CommentCounts is the aggregate carried by stories and the site.
type CommentCounts struct {
	Action          ActionCounts          `bson:"action" json:"action"`
	Status          StatusCounts          `bson:"status" json:"status"`
	ModerationQueue ModerationQueueCounts `bson:"moderationQueue" json:"moderationQueue"`
}

type UserCommentCounts struct {
	Status StatusCounts `bson:"status" json:"status"`
}
