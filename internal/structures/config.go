package structures

import "time"

type StoreConfig struct {
	Driver   string `yaml:"driver" validate:"required|in:mongo,file"`
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	Dir      string `yaml:"dir"`
}

type SiteConfig struct {
	Host string `yaml:"host" validate:"required"`
}

type MigrationConfig struct {
	NotFoundTitlePrefix string        `yaml:"notFoundTitlePrefix"`
	SnapshotPath        string        `yaml:"snapshotPath"`
	Timeout             time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	DryRun    bool
	AssumeYes bool
	Source    StoreConfig     `yaml:"source"`
	Target    StoreConfig     `yaml:"target"`
	Site      SiteConfig      `yaml:"site"`
	Migration MigrationConfig `yaml:"migration"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
