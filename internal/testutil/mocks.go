package testutil

import (
	"context"
	"fmt"
	"sync"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Hits int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	}
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu       sync.Mutex
	Records  map[string]int // key: "collection/outcome"
	Phases   []string
	Dangling int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Records: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObservePhaseDuration(phase string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Phases = append(m.Phases, phase)
}

func (m *MockMetrics) AddRecords(collection, outcome string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records[collection+"/"+outcome] += count
}

func (m *MockMetrics) SetDanglingReferences(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dangling = count
}

// MemoryStore implements storage.Store over in-memory collections. Inserted
// values go through a bson round trip so reads see what a database would return.
type MemoryStore struct {
	mu          sync.Mutex
	Collections map[string][]models.Document
	Ops         []string
	FailOn      map[string]error // key: "op:collection"
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Collections: make(map[string][]models.Document), FailOn: make(map[string]error)}
}

// Seed stores raw documents without recording an operation.
func (m *MemoryStore) Seed(collection string, docs ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		doc, err := roundTrip(d)
		if err != nil {
			return err
		}
		m.Collections[collection] = append(m.Collections[collection], doc)
	}
	return nil
}

func (m *MemoryStore) fail(op, collection string) error {
	m.Ops = append(m.Ops, op+":"+collection)
	return m.FailOn[op+":"+collection]
}

func (m *MemoryStore) ReadAll(_ context.Context, collection string) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("read", collection); err != nil {
		return nil, err
	}
	return append([]models.Document(nil), m.Collections[collection]...), nil
}

func (m *MemoryStore) FindOne(_ context.Context, collection string) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("find", collection); err != nil {
		return nil, err
	}
	docs := m.Collections[collection]
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", collection, models.ErrNotFound)
	}
	return docs[0], nil
}

func (m *MemoryStore) DeleteAll(_ context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete", collection); err != nil {
		return 0, err
	}
	n := int64(len(m.Collections[collection]))
	delete(m.Collections, collection)
	return n, nil
}

func (m *MemoryStore) InsertMany(_ context.Context, collection string, docs []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("insert", collection); err != nil {
		return err
	}
	for _, d := range docs {
		doc, err := roundTrip(d)
		if err != nil {
			return err
		}
		m.Collections[collection] = append(m.Collections[collection], doc)
	}
	return nil
}

func (m *MemoryStore) ReplaceOne(_ context.Context, collection string, id string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("replace", collection); err != nil {
		return err
	}
	for i, d := range m.Collections[collection] {
		if d.ID() == id {
			replaced, err := roundTrip(doc)
			if err != nil {
				return err
			}
			m.Collections[collection][i] = replaced
			return nil
		}
	}
	return fmt.Errorf("replace %s %s: %w", collection, id, models.ErrNotFound)
}

func (m *MemoryStore) Close(_ context.Context) error { return nil }

// Find returns the stored document with the given id.
func (m *MemoryStore) Find(collection, id string) models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.Collections[collection] {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

func roundTrip(v any) (models.Document, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw bson.D
	if err := bson.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return models.NewDocument(raw)
}
