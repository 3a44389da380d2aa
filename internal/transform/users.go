package transform

import (
	"strings"

	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"
)

const (
	defaultRole            = "COMMENTER"
	defaultDigestFrequency = "NONE"
)

// UserSet is the migrated users plus the ids of users scheduled for deletion.
type UserSet struct {
	Users   []*models.User
	Index   map[string]*models.User
	Deleted map[string]struct{}
}

func (s *UserSet) IsDeleted(id string) bool {
	_, ok := s.Deleted[id]
	return ok
}

func (t *Transformer) Users(docs []models.Document, report *models.Report) (*UserSet, error) {
	set := &UserSet{
		Index:   make(map[string]*models.User, len(docs)),
		Deleted: make(map[string]struct{}),
	}

	for _, doc := range docs {
		report.Users.Read++

		var legacy models.LegacyUser
		if _, err := t.validate(schema.EntityUser, doc, &legacy); err != nil {
			return nil, err
		}
		if legacy.Metadata.ScheduledDeletionDate != nil {
			set.Deleted[legacy.ID] = struct{}{}
			report.Users.Skipped++
			t.logger.Debugf(providers.TypeUser, "User %s is scheduled for deletion, not migrated", legacy.ID)
			continue
		}

		user := t.user(&legacy)
		set.Users = append(set.Users, user)
		set.Index[user.ID] = user
	}

	report.Users.Migrated = len(set.Users)
	report.DeletedUsers = len(set.Deleted)
	t.logger.Infof(providers.TypeUser, "Migrated %d users, %d scheduled for deletion", len(set.Users), len(set.Deleted))
	return set, nil
}

func (t *Transformer) user(legacy *models.LegacyUser) *models.User {
	role := legacy.Role
	if role == "" {
		role = defaultRole
	}
	u := &models.User{
		ID:            legacy.ID,
		TenantID:      t.scope.TenantID,
		Username:      legacy.Username,
		Role:          role,
		Tokens:        []any{},
		IgnoredUsers:  []string{},
		Status:        models.NewUserStatus(),
		Notifications: models.NotificationSettings{DigestFrequency: defaultDigestFrequency},
		ModeratorNote: []any{},
		Digests:       []any{},
		CreatedAt:     legacy.CreatedAt,
	}
	prof := legacy.Profiles[0]

	if legacy.Imported() {
		u.Profiles = []models.Profile{{Type: prof.Provider, ID: prof.ID}}
		u.Metadata.Source = models.ImportSource
		return u
	}

	if legacy.Status != nil {
		u.Status.Ban.Active = legacy.Status.Banned.Status
		u.Status.Premod.Active = legacy.Status.AlwaysPremod.Status
	}
	if len(legacy.IgnoresUsers) > 0 {
		u.IgnoredUsers = legacy.IgnoresUsers
	}

	p := models.Profile{Type: prof.Provider, ID: prof.ID}
	if prof.Provider == models.ProviderLocal {
		p.Password = legacy.Password
		p.PasswordID = t.newID()
		email := prof.ID
		verified := prof.Metadata != nil && prof.Metadata.ConfirmedAt != nil
		u.Email = &email
		u.EmailVerified = &verified
	}
	u.Profiles = []models.Profile{p}

	if av := legacy.Metadata.Avatar; av != nil && *av != "" && !strings.HasPrefix(*av, "data:") {
		avatar := *av
		u.Avatar = &avatar
	}
	if n := legacy.Metadata.Notifications; n != nil {
		s := n.Settings
		u.Notifications.OnReply = s.OnReply != nil && *s.OnReply
		u.Notifications.OnFeatured = s.OnFeatured != nil && *s.OnFeatured
		if s.DigestFrequency != nil {
			u.Notifications.DigestFrequency = *s.DigestFrequency
		}
	}
	return u
}
