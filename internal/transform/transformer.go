package transform

import (
	"time"

	"talkmigrate/internal/canonical"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"

	"github.com/google/uuid"
)

// Scope is the target tenant and site every migrated record belongs to.
type Scope struct {
	TenantID string
	SiteID   string
}

// Transformer maps validated legacy records onto target records. One
// Transformer serves a single run.
type Transformer struct {
	scope          Scope
	validator      schema.ValidatorInterface
	canonicalizer  canonical.CanonicalizerInterface
	logger         providers.Logger
	notFoundPrefix string
	now            func() time.Time
	newID          func() string
}

type Option func(*Transformer)

// WithClock replaces the time source used for synthesized deletion dates.
func WithClock(now func() time.Time) Option {
	return func(t *Transformer) { t.now = now }
}

// WithIDGenerator replaces the generator of revision and password ids.
func WithIDGenerator(newID func() string) Option {
	return func(t *Transformer) { t.newID = newID }
}

// WithNotFoundPrefix sets the title prefix that marks placeholder stories.
func WithNotFoundPrefix(prefix string) Option {
	return func(t *Transformer) { t.notFoundPrefix = prefix }
}

func NewTransformer(scope Scope, validator schema.ValidatorInterface, canonicalizer canonical.CanonicalizerInterface, logger providers.Logger, opts ...Option) *Transformer {
	t := &Transformer{
		scope:          scope,
		validator:      validator,
		canonicalizer:  canonicalizer,
		logger:         logger,
		notFoundPrefix: "Page Not Found",
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transformer) validate(entity schema.Entity, doc models.Document, out any) (string, error) {
	variant, err := t.validator.Validate(entity, doc)
	if err != nil {
		return "", err
	}
	if err := doc.Decode(out); err != nil {
		return "", err
	}
	return variant, nil
}

func (t *Transformer) dangling(report *models.Report, logType providers.TypeEnum, d *models.DanglingReference) {
	report.AddDangling(d)
	t.logger.Warnf(logType, "%s", d.Error())
}
