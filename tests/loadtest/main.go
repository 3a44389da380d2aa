package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"talkmigrate/internal/canonical"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"
	"talkmigrate/internal/services"
	"talkmigrate/internal/storage"
	"talkmigrate/internal/structures"
	"talkmigrate/internal/testutil"
)

const (
	siteHost    = "www.angrymetalguy.com"
	numStories  = 2000
	numUsers    = 5000
	numComments = 100000
	numActions  = 50000
	seed        = 42
)

// phaseTimer keeps the durations the migration reports per phase.
type phaseTimer struct {
	*testutil.MockMetrics
	mu     sync.Mutex
	phases map[string]time.Duration
}

func (p *phaseTimer) ObservePhaseDuration(phase string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phases[phase] += d
}

func main() {
	fmt.Println("=== TalkMigrate Load Test ===")
	fmt.Printf("Stories: %d | Users: %d | Comments: %d | Actions: %d\n\n", numStories, numUsers, numComments, numActions)

	dir, err := os.MkdirTemp("", "talkmigrate-loadtest")
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	defer os.RemoveAll(dir)

	logger := &testutil.MockLogger{}
	compressor, err := storage.NewZstdCompressor()
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	defer compressor.Close()

	source, err := storage.NewFileStore(dir+"/talk", compressor, logger)
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	target, err := storage.NewFileStore(dir+"/coral", compressor, logger)
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}

	fmt.Println("--- Phase 1: Writing legacy dump ---")
	start := time.Now()
	if err := seedDump(context.Background(), source, target, rand.New(rand.NewSource(seed))); err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	fmt.Printf("  written in %s\n", fmtDur(time.Since(start)))

	fmt.Println("\n--- Phase 2: Migrating ---")
	conf := &structures.Config{
		AssumeYes: true,
		Site:      structures.SiteConfig{Host: siteHost},
		Migration: structures.MigrationConfig{NotFoundTitlePrefix: "Page Not Found", Timeout: 10 * time.Minute},
		Cache:     structures.CacheConfig{Enabled: true, Size: 8 << 20, TTL: time.Hour},
	}
	timer := &phaseTimer{MockMetrics: testutil.NewMockMetrics(), phases: map[string]time.Duration{}}
	ms := services.NewMigrationService(
		conf, source, target,
		schema.NewValidator(),
		canonical.NewCanonicalizer(conf, providers.NewCacheProvider(conf, logger)),
		providers.NewRecordValidator(),
		providers.NewConfirmProviderWithIO(strings.NewReader(""), os.Stdout, true),
		storage.NewSnapshotManager(compressor, logger),
		timer, logger,
	)

	start = time.Now()
	report, err := ms.Run(context.Background())
	total := time.Since(start)
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}

	printResults(timer.phases, total, report)
}

// seedDump writes a synthetic site with duplicate URLs, placeholders, deleted
// users and deep threads.
func seedDump(ctx context.Context, source, target storage.Store, rng *rand.Rand) error {
	if err := target.InsertMany(ctx, models.TargetTenants, []any{models.Document{"id": "tenant-1"}}); err != nil {
		return err
	}
	if err := target.InsertMany(ctx, models.TargetSites, []any{models.Document{"id": "site-1", "tenantID": "tenant-1"}}); err != nil {
		return err
	}

	stories := make([]any, 0, numStories)
	for i := 0; i < numStories; i++ {
		id := "s" + strconv.Itoa(i)
		slug := fmt.Sprintf("/caf%%C3%%A9-%d/", i)
		switch r := rng.Float64(); {
		case r < 0.05:
			stories = append(stories, testutil.PlaceholderStory(id, "https://"+siteHost+slug))
			continue
		case r < 0.10 && i > 0:
			// same page as the previous story, stored with a raw accent
			slug = fmt.Sprintf("/café-%d/", i-1)
		case r < 0.20:
			slug = fmt.Sprintf("/café-%d/", i)
		}
		stories = append(stories, testutil.OrganicStory(id, "http://"+siteHost+slug))
	}

	users := make([]any, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		id := "u" + strconv.Itoa(i)
		switch r := rng.Float64(); {
		case r < 0.02:
			u := testutil.LocalUser(id, false)
			u["metadata"] = map[string]any{"scheduledDeletionDate": testutil.At(1000)}
			users = append(users, u)
		case r < 0.30:
			users = append(users, testutil.ImportedUser(id))
		case r < 0.50:
			users = append(users, testutil.SocialUser(id, "google"))
		default:
			users = append(users, testutil.LocalUser(id, rng.Intn(2) == 0))
		}
	}

	comments := make([]any, 0, numComments)
	storyOf := make([]string, 0, numComments)
	for i := 0; i < numComments; i++ {
		id := "c" + strconv.Itoa(i)
		storyID := "s" + strconv.Itoa(rng.Intn(numStories))
		var parent any
		if i > 0 && rng.Float64() < 0.6 {
			p := rng.Intn(i)
			parent = "c" + strconv.Itoa(p)
			storyID = storyOf[p]
		}
		storyOf = append(storyOf, storyID)
		author := "u" + strconv.Itoa(rng.Intn(numUsers))
		if rng.Float64() < 0.03 {
			comments = append(comments, testutil.DeletedComment(id, storyID, parent, i, i+1))
			continue
		}
		comments = append(comments, testutil.OrganicComment(id, storyID, author, parent, i))
	}

	actions := make([]any, 0, numActions)
	for i := 0; i < numActions; i++ {
		id := "a" + strconv.Itoa(i)
		comment := "c" + strconv.Itoa(rng.Intn(numComments))
		user := "u" + strconv.Itoa(rng.Intn(numUsers))
		if rng.Float64() < 0.1 {
			actions = append(actions, testutil.FlagAction(id, comment, user))
			continue
		}
		actions = append(actions, testutil.RespectAction(id, comment, user, i))
	}

	for coll, docs := range map[string][]any{
		models.LegacyStories:  stories,
		models.LegacyUsers:    users,
		models.LegacyComments: comments,
		models.LegacyActions:  actions,
	} {
		if err := source.InsertMany(ctx, coll, docs); err != nil {
			return err
		}
	}
	return nil
}

func printResults(phases map[string]time.Duration, total time.Duration, report *models.Report) {
	names := make([]string, 0, len(phases))
	for name := range phases {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return phases[names[i]] > phases[names[j]] })

	fmt.Printf("\n  %-12s %12s %8s\n", "Phase", "Time", "Share")
	fmt.Println("  " + strings.Repeat("-", 34))
	for _, name := range names {
		fmt.Printf("  %-12s %12s %7.1f%%\n", name, fmtDur(phases[name]), float64(phases[name])/float64(total)*100)
	}
	fmt.Println("  " + strings.Repeat("-", 34))

	records := report.Stories.Read + report.Users.Read + report.Comments.Read + report.Actions.Read
	fmt.Printf("  Total: %s | Records: %d | Records/s: %.0f\n\n", fmtDur(total), records, float64(records)/total.Seconds())
	fmt.Println(providers.RenderReport(report))
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
