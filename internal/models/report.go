package models

// CollectionReport counts what happened to one legacy collection.
type CollectionReport struct {
	Read     int `json:"read"`
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Dropped  int `json:"dropped"`
}

// Report summarizes a run for audit. Dangling references are kept as warnings.
type Report struct {
	Stories        CollectionReport     `json:"stories"`
	Users          CollectionReport     `json:"users"`
	Comments       CollectionReport     `json:"comments"`
	Actions        CollectionReport     `json:"actions"`
	URLsRewritten  int                  `json:"urls_rewritten"`
	URLsRedirected int                  `json:"urls_redirected"`
	DeletedUsers   int                  `json:"deleted_users"`
	Dangling       []*DanglingReference `json:"dangling,omitempty"`
}

func (r *Report) AddDangling(d *DanglingReference) {
	r.Dangling = append(r.Dangling, d)
}
