package canonical

// Redirects maps a removed story id to the id of the story that absorbed it.
// It is built once by Resolve and only read afterwards.
type Redirects map[string]string

// Resolve follows the redirect for id, if any.
func (r Redirects) Resolve(id string) string {
	if to, ok := r[id]; ok {
		return to
	}
	return id
}

type member struct {
	id        string
	storedURL string
	eligible  bool
}

type group struct {
	url     string
	members []member
}

// Resolution is the outcome of grouping stories by canonical URL.
type Resolution struct {
	// Rewrites holds surviving story ids whose stored URL must become the canonical one.
	Rewrites map[string]string
	// Removed lists migrated stories that lost to a survivor.
	Removed   []string
	Redirects Redirects
	// Rewritten counts single-member groups whose URL was rewritten in place.
	Rewritten int
	// Redirected counts groups that collapsed several records into one.
	Redirected int
	Events     []Event
}

// Event describes one reconciliation decision, for the audit log.
type Event struct {
	CanonicalURL string
	SurvivorID   string
	MergedIDs    []string
	Forced       bool
}

// Deduplicator groups story records by canonical URL in first-seen order.
type Deduplicator struct {
	groups map[string]*group
	order  []string
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{groups: make(map[string]*group)}
}

// Add registers a record. Ineligible records (skipped placeholders) only take
// part as redirect sources and never survive.
func (d *Deduplicator) Add(id, storedURL, canonicalURL string, eligible bool) {
	g, ok := d.groups[canonicalURL]
	if !ok {
		g = &group{url: canonicalURL}
		d.groups[canonicalURL] = g
		d.order = append(d.order, canonicalURL)
	}
	g.members = append(g.members, member{id: id, storedURL: storedURL, eligible: eligible})
}

func (d *Deduplicator) Resolve() Resolution {
	res := Resolution{
		Rewrites:  make(map[string]string),
		Redirects: make(Redirects),
	}
	for _, u := range d.order {
		g := d.groups[u]
		survivor, forced, ok := g.survivor()
		if !ok {
			continue
		}
		if len(g.members) == 1 {
			if survivor.storedURL != g.url {
				res.Rewrites[survivor.id] = g.url
				res.Rewritten++
			}
			continue
		}

		if forced {
			res.Rewrites[survivor.id] = g.url
		}
		ev := Event{CanonicalURL: g.url, SurvivorID: survivor.id, Forced: forced}
		for _, m := range g.members {
			if m.id == survivor.id {
				continue
			}
			res.Redirects[m.id] = survivor.id
			if m.eligible {
				res.Removed = append(res.Removed, m.id)
			}
			ev.MergedIDs = append(ev.MergedIDs, m.id)
		}
		res.Redirected++
		res.Events = append(res.Events, ev)
	}
	return res
}

// survivor prefers an eligible member already stored under the canonical URL,
// smallest id first so the choice does not depend on input order. Otherwise
// the first-seen eligible member is forced onto the canonical URL.
func (g *group) survivor() (member, bool, bool) {
	var exact *member
	var first *member
	for i := range g.members {
		m := &g.members[i]
		if !m.eligible {
			continue
		}
		if first == nil {
			first = m
		}
		if m.storedURL == g.url && (exact == nil || m.id < exact.id) {
			exact = m
		}
	}
	switch {
	case exact != nil:
		return *exact, false, true
	case first != nil:
		return *first, true, true
	}
	return member{}, false, false
}
