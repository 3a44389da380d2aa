package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"talkmigrate/internal/canonical"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"
	"talkmigrate/internal/storage"
	"talkmigrate/internal/structures"
	"talkmigrate/internal/transform"
	"talkmigrate/internal/tree"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRead     Phase = "read"
	PhaseStories  Phase = "stories"
	PhaseUsers    Phase = "users"
	PhaseComments Phase = "comments"
	PhaseTree     Phase = "tree"
	PhaseActions  Phase = "actions"
	PhaseValidate Phase = "validate"
	PhaseConfirm  Phase = "confirm"
	PhaseCommit   Phase = "commit"
	PhaseDone     Phase = "done"
	PhaseFailed   Phase = "failed"
)

// Progress is a point-in-time view of a run, safe to read from other goroutines.
type Progress struct {
	Phase     Phase         `json:"phase"`
	StartedAt time.Time     `json:"started_at"`
	Report    models.Report `json:"report"`
	Dangling  int           `json:"dangling"`
	Error     string        `json:"error,omitempty"`
}

type MigrationServiceInterface interface {
	Run(ctx context.Context) (*models.Report, error)
	Progress() Progress
}

type MigrationService struct {
	conf          *structures.Config
	source        storage.SourceStore
	target        storage.TargetStore
	validator     schema.ValidatorInterface
	canonicalizer canonical.CanonicalizerInterface
	records       providers.RecordValidatorInterface
	confirm       providers.ConfirmProviderInterface
	snapshots     *storage.SnapshotManager
	metrics       providers.MetricsProviderInterface
	logger        providers.Logger
	options       []transform.Option
	progress      atomic.Pointer[Progress]
}

func NewMigrationService(
	conf *structures.Config,
	source storage.SourceStore,
	target storage.TargetStore,
	validator schema.ValidatorInterface,
	canonicalizer canonical.CanonicalizerInterface,
	records providers.RecordValidatorInterface,
	confirm providers.ConfirmProviderInterface,
	snapshots *storage.SnapshotManager,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *MigrationService {
	ms := &MigrationService{
		conf:          conf,
		source:        source,
		target:        target,
		validator:     validator,
		canonicalizer: canonicalizer,
		records:       records,
		confirm:       confirm,
		snapshots:     snapshots,
		metrics:       metrics,
		logger:        logger,
	}
	if prefix := conf.Migration.NotFoundTitlePrefix; prefix != "" {
		ms.options = append(ms.options, transform.WithNotFoundPrefix(prefix))
	}
	ms.progress.Store(&Progress{Phase: PhaseIdle})
	return ms
}

// WithTransformOptions appends options passed to the per-run transformer.
func (ms *MigrationService) WithTransformOptions(opts ...transform.Option) *MigrationService {
	ms.options = append(ms.options, opts...)
	return ms
}

func (ms *MigrationService) Progress() Progress {
	return *ms.progress.Load()
}

func (ms *MigrationService) publish(phase Phase, started time.Time, report *models.Report, err error) {
	p := &Progress{Phase: phase, StartedAt: started}
	if report != nil {
		p.Report = *report
		p.Report.Dangling = nil
		p.Dangling = len(report.Dangling)
	}
	if err != nil {
		p.Error = err.Error()
	}
	ms.progress.Store(p)
}

// result is everything a run produces before the commit point.
type result struct {
	tenantID string
	site     *models.Site
	stories  []*models.Story
	users    []*models.User
	comments []*models.Comment
	actions  []*models.CommentAction
}

// Run transforms the whole legacy dataset in memory and, once every record is
// valid and the operator agrees, replaces the target collections.
//
// migration.timeout bounds reading and transforming only. Once the operator
// has confirmed, the commit runs to completion regardless of the deadline or
// cancellation, so the target is never left half replaced.
func (ms *MigrationService) Run(ctx context.Context) (*models.Report, error) {
	transformCtx := ctx
	if ms.conf.Migration.Timeout > 0 {
		var cancel context.CancelFunc
		transformCtx, cancel = context.WithTimeout(ctx, ms.conf.Migration.Timeout)
		defer cancel()
	}

	started := time.Now()
	report := &models.Report{}
	res, err := ms.transform(transformCtx, started, report)
	if err == nil {
		err = ms.finish(ctx, started, report, res)
	}
	if err != nil {
		ms.publish(PhaseFailed, started, report, err)
		if !errors.Is(err, models.ErrAborted) {
			ms.logger.Errorf(providers.TypeApp, "Migration failed: %s", err)
		}
		return report, err
	}

	ms.publish(PhaseDone, started, report, nil)
	ms.logger.Infof(providers.TypeApp, "Migration finished in %s", time.Since(started).Round(time.Millisecond))
	return report, nil
}

func (ms *MigrationService) phase(phase Phase, started time.Time, report *models.Report, fn func() error) error {
	ms.publish(phase, started, report, nil)
	ms.logger.Infof(providers.TypeApp, "Phase %s", phase)
	t := time.Now()
	err := fn()
	ms.metrics.ObservePhaseDuration(string(phase), time.Since(t))
	if err != nil {
		return fmt.Errorf("%s: %w", phase, err)
	}
	return nil
}

func (ms *MigrationService) transform(ctx context.Context, started time.Time, report *models.Report) (*result, error) {
	res := &result{}
	var legacy map[string][]models.Document

	err := ms.phase(PhaseRead, started, report, func() error {
		var err error
		res.tenantID, res.site, err = ms.readTargetScope(ctx)
		if err != nil {
			return err
		}
		legacy, err = ms.readLegacy(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	tr := transform.NewTransformer(
		transform.Scope{TenantID: res.tenantID, SiteID: res.site.ID},
		ms.validator, ms.canonicalizer, ms.logger, ms.options...,
	)
	transform.ResetSite(res.site)

	var stories *transform.StorySet
	var users *transform.UserSet
	var comments *transform.CommentSet
	var agg *transform.Aggregator

	if err := ms.phase(PhaseStories, started, report, func() error {
		var err error
		stories, err = tr.Stories(legacy[models.LegacyStories], report)
		return err
	}); err != nil {
		return nil, err
	}
	if err := ms.phase(PhaseUsers, started, report, func() error {
		var err error
		users, err = tr.Users(legacy[models.LegacyUsers], report)
		return err
	}); err != nil {
		return nil, err
	}

	agg = transform.NewAggregator(stories.Index, users.Index, &res.site.CommentCounts)
	if err := ms.phase(PhaseComments, started, report, func() error {
		var err error
		comments, err = tr.Comments(legacy[models.LegacyComments], stories, users, agg, report)
		return err
	}); err != nil {
		return nil, err
	}
	if err := ms.phase(PhaseTree, started, report, func() error {
		dangling, err := tree.NewBuilder(ms.logger).Link(comments.Comments, comments.Index)
		for _, d := range dangling {
			report.AddDangling(d)
		}
		return err
	}); err != nil {
		return nil, err
	}
	if err := ms.phase(PhaseActions, started, report, func() error {
		var err error
		res.actions, err = tr.Actions(legacy[models.LegacyActions], comments, users, agg, report)
		return err
	}); err != nil {
		return nil, err
	}

	res.stories = stories.Stories
	res.users = users.Users
	res.comments = comments.Comments

	if err := ms.phase(PhaseValidate, started, report, func() error {
		return ms.validateTargets(res)
	}); err != nil {
		return nil, err
	}
	ms.recordMetrics(report)
	return res, nil
}

func (ms *MigrationService) finish(ctx context.Context, started time.Time, report *models.Report, res *result) error {
	if path := ms.conf.Migration.SnapshotPath; path != "" {
		if err := ms.snapshots.SaveToFile(path, ms.snapshot(res, report)); err != nil {
			return err
		}
	}
	if ms.conf.DryRun {
		ms.logger.Infof(providers.TypeApp, "Dry run, target left untouched")
		return nil
	}

	ms.publish(PhaseConfirm, started, report, nil)
	ok, err := ms.confirm.Confirm(report)
	if err != nil {
		return err
	}
	if !ok {
		ms.logger.Warnf(providers.TypeApp, "Commit declined, target left untouched")
		return models.ErrAborted
	}

	// cancelled while waiting on the operator: nothing written yet
	if err := ctx.Err(); err != nil {
		return err
	}
	commitCtx := context.WithoutCancel(ctx)
	return ms.phase(PhaseCommit, started, report, func() error {
		return ms.commit(commitCtx, res)
	})
}

func (ms *MigrationService) readTargetScope(ctx context.Context) (string, *models.Site, error) {
	tenant, err := ms.target.FindOne(ctx, models.TargetTenants)
	if err != nil {
		return "", nil, fmt.Errorf("read tenant: %w", err)
	}
	tenantID, ok := tenant.String("id")
	if !ok || tenantID == "" {
		return "", nil, fmt.Errorf("tenant record has no id")
	}

	siteDoc, err := ms.target.FindOne(ctx, models.TargetSites)
	if err != nil {
		return "", nil, fmt.Errorf("read site: %w", err)
	}
	siteID, ok := siteDoc.String("id")
	if !ok || siteID == "" {
		return "", nil, fmt.Errorf("site record has no id")
	}
	siteTenant, _ := siteDoc.String("tenantID")
	return tenantID, &models.Site{ID: siteID, TenantID: siteTenant, Document: siteDoc}, nil
}

func (ms *MigrationService) readLegacy(ctx context.Context) (map[string][]models.Document, error) {
	out := make(map[string][]models.Document, 4)
	for _, coll := range []string{models.LegacyStories, models.LegacyUsers, models.LegacyComments, models.LegacyActions} {
		docs, err := ms.source.ReadAll(ctx, coll)
		if err != nil {
			return nil, err
		}
		ms.logger.Infof(providers.GetLogTypeByCollection(coll), "Read %d %s", len(docs), coll)
		out[coll] = docs
	}
	return out, nil
}

func (ms *MigrationService) validateTargets(res *result) error {
	check := func(kind, id string, v any) error {
		if err := ms.records.ValidateStruct(v); err != nil {
			return fmt.Errorf("%s %s: %w", kind, id, err)
		}
		return nil
	}
	for _, s := range res.stories {
		if err := check("story", s.ID, s); err != nil {
			return err
		}
	}
	for _, u := range res.users {
		if err := check("user", u.ID, u); err != nil {
			return err
		}
	}
	for _, c := range res.comments {
		if err := check("comment", c.ID, c); err != nil {
			return err
		}
	}
	for _, a := range res.actions {
		if err := check("action", a.ID, a); err != nil {
			return err
		}
	}
	return nil
}

func (ms *MigrationService) snapshot(res *result, report *models.Report) *models.Snapshot {
	return &models.Snapshot{
		CreatedAt: time.Now().UTC(),
		TenantID:  res.tenantID,
		Site:      models.SiteSummary{ID: res.site.ID, CommentCounts: res.site.CommentCounts},
		Report:    report,
		Stories:   res.stories,
		Users:     res.users,
		Comments:  res.comments,
		Actions:   res.actions,
	}
}

// commit is the only destructive step. Collections are cleared children first.
func (ms *MigrationService) commit(ctx context.Context, res *result) error {
	for _, coll := range []string{
		models.TargetCommentActions,
		models.TargetCommentModerationActions,
		models.TargetComments,
		models.TargetUsers,
		models.TargetStories,
	} {
		if _, err := ms.target.DeleteAll(ctx, coll); err != nil {
			return err
		}
	}

	inserts := []struct {
		coll string
		docs []any
	}{
		{models.TargetUsers, toAny(res.users)},
		{models.TargetStories, toAny(res.stories)},
		{models.TargetComments, toAny(res.comments)},
		{models.TargetCommentActions, toAny(res.actions)},
	}
	for _, in := range inserts {
		if err := ms.target.InsertMany(ctx, in.coll, in.docs); err != nil {
			return err
		}
	}

	return ms.target.ReplaceOne(ctx, models.TargetSites, res.site.ID, res.site.ToDocument())
}

func (ms *MigrationService) recordMetrics(report *models.Report) {
	for coll, c := range map[string]models.CollectionReport{
		models.LegacyStories:  report.Stories,
		models.LegacyUsers:    report.Users,
		models.LegacyComments: report.Comments,
		models.LegacyActions:  report.Actions,
	} {
		ms.metrics.AddRecords(coll, "read", c.Read)
		ms.metrics.AddRecords(coll, "migrated", c.Migrated)
		ms.metrics.AddRecords(coll, "skipped", c.Skipped)
		ms.metrics.AddRecords(coll, "dropped", c.Dropped)
	}
	ms.metrics.SetDanglingReferences(len(report.Dangling))
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
