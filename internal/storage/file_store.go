package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const fileStoreExt = ".jsonl.zst"

// FileStore keeps each collection as a zstd-compressed file of canonical
// extended JSON documents, one per line. A missing file is an empty collection.
type FileStore struct {
	mu         sync.Mutex
	dir        string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileStore(dir string, compressor CompressorInterface, logger providers.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, compressor: compressor, logger: logger}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+fileStoreExt)
}

func (s *FileStore) ReadAll(_ context.Context, collection string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf(providers.TypeStorage, "Read %d records from %s", len(docs), s.path(collection))
	return docs, nil
}

func (s *FileStore) FindOne(_ context.Context, collection string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", collection, ErrNotFound)
	}
	return docs[0], nil
}

func (s *FileStore) DeleteAll(_ context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return 0, err
	}
	if err := os.Remove(s.path(collection)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("clear %s: %w", collection, err)
	}
	s.logger.Infof(providers.TypeStorage, "Deleted %d records from %s", len(docs), collection)
	return int64(len(docs)), nil
}

func (s *FileStore) InsertMany(_ context.Context, collection string, docs []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(collection)
	if err != nil {
		return err
	}
	all := make([]any, 0, len(existing)+len(docs))
	for _, d := range existing {
		all = append(all, d)
	}
	all = append(all, docs...)
	if err := s.save(collection, all); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeStorage, "Inserted %d records into %s", len(docs), collection)
	return nil
}

func (s *FileStore) ReplaceOne(_ context.Context, collection string, id string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(collection)
	if err != nil {
		return err
	}
	all := make([]any, len(existing))
	found := false
	for i, d := range existing {
		all[i] = d
		if !found && d.ID() == id {
			all[i] = doc
			found = true
		}
	}
	if !found {
		return fmt.Errorf("replace %s %s: %w", collection, id, ErrNotFound)
	}
	return s.save(collection, all)
}

func (s *FileStore) Close(_ context.Context) error {
	s.compressor.Close()
	return nil
}

func (s *FileStore) load(collection string) ([]models.Document, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	plain, err := s.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", collection, err)
	}

	var docs []models.Document
	scanner := bufio.NewScanner(bytes.NewReader(plain))
	scanner.Buffer(make([]byte, 0, 64*1024), len(plain)+1)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var raw bson.D
		if err := bson.UnmarshalExtJSON(text, true, &raw); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", collection, line, err)
		}
		doc, err := models.NewDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", collection, line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}
	return docs, nil
}

func (s *FileStore) save(collection string, docs []any) error {
	var buf bytes.Buffer
	for _, d := range docs {
		line, err := bson.MarshalExtJSON(d, true, false)
		if err != nil {
			return fmt.Errorf("encode %s record: %w", collection, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	data, err := s.compressor.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("compress %s: %w", collection, err)
	}
	return writeFileAtomic(s.path(collection), data)
}

// writeFileAtomic writes through a synced temp file renamed over the target.
func writeFileAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
