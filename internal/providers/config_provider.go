package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"talkmigrate/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("migration.notFoundTitlePrefix", "Page Not Found")
	viper.SetDefault("migration.timeout", "30m")

	viper.BindEnv("logger.level", "TALKMIGRATE_LOG_LEVEL")
	viper.BindEnv("source.uri", "TALKMIGRATE_SOURCE_URI")
	viper.BindEnv("target.uri", "TALKMIGRATE_TARGET_URI")
	viper.BindEnv("site.host", "TALKMIGRATE_SITE_HOST")
	viper.BindEnv("migration.snapshotPath", "TALKMIGRATE_SNAPSHOT_PATH")
	viper.BindEnv("cache.enabled", "TALKMIGRATE_CACHE_ENABLED")
	viper.BindEnv("metrics.enabled", "TALKMIGRATE_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.AppName = "TalkMigrate"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	conf.DryRun = flags.DryRun
	conf.AssumeYes = flags.AssumeYes

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	return &conf, nil
}
