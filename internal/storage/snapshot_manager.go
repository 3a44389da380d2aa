package storage

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
)

// SnapshotManager persists the transformed result set of a run.
type SnapshotManager struct {
	compressor CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(compressor CompressorInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		compressor: compressor,
		logger:     logger,
	}
}

func (m *SnapshotManager) SaveToFile(fileName string, snapshot *models.Snapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	if err := writeFileAtomic(fileName, data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", fileName, err)
	}
	m.logger.Infof(providers.TypeStorage, "Snapshot written to %s (%d bytes)", fileName, len(data))
	return nil
}

func (m *SnapshotManager) LoadFromFile(fileName string) (*models.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	decompressedData, err := m.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}
