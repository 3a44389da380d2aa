package providers

import (
	"fmt"
	"talkmigrate/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	for name, store := range map[string]structures.StoreConfig{"source": cv.conf.Source, "target": cv.conf.Target} {
		switch store.Driver {
		case "mongo":
			if store.URI == "" || store.Database == "" {
				return fmt.Errorf("invalid config: %s.uri and %s.database are required for the mongo driver", name, name)
			}
		case "file":
			if store.Dir == "" {
				return fmt.Errorf("invalid config: %s.dir is required for the file driver", name)
			}
		default:
			return fmt.Errorf("invalid config: unknown %s driver %q", name, store.Driver)
		}
	}

	if cv.conf.DryRun && cv.conf.Migration.SnapshotPath == "" {
		return fmt.Errorf("invalid config: migration.snapshotPath is required for a dry run")
	}
	if cv.conf.Metrics.Enabled && (cv.conf.Metrics.Host == "" || cv.conf.Metrics.Port <= 0) {
		return fmt.Errorf("invalid config: metrics.host and metrics.port are required when metrics are enabled")
	}
	return nil
}
