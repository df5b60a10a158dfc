package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/suvrat007/tutora-sub001/internal/models"
	appErrors "github.com/suvrat007/tutora-sub001/pkg/errors"
)

type memStates struct {
	states  map[string]models.ConsoleState
	saves   int
	loadErr error
	saveErr error
}

func newMemStates() *memStates {
	return &memStates{states: map[string]models.ConsoleState{}}
}

func (m *memStates) Load(ctx context.Context, session string) (models.ConsoleState, error) {
	if m.loadErr != nil {
		return models.ConsoleState{}, m.loadErr
	}
	if st, ok := m.states[session]; ok {
		return st, nil
	}
	return models.NewConsoleState(), nil
}

func (m *memStates) Save(ctx context.Context, session string, state models.ConsoleState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.states[session] = state
	return nil
}

func (m *memStates) Delete(ctx context.Context, session string) error {
	delete(m.states, session)
	return nil
}

type stubSnapshots struct {
	batches   []models.Batch
	groups    []models.StudentGroup
	logs      []models.ClassLog
	summary   []models.AttendanceSummaryRow
	errs      map[string]error
	calls     map[string]int
	refreshes []string
}

func newStubSnapshots(in RosterInput) *stubSnapshots {
	return &stubSnapshots{
		batches: in.Batches,
		groups:  in.Students,
		logs:    in.ClassLogs,
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (s *stubSnapshots) hit(kind string) error {
	s.calls[kind]++
	return s.errs[kind]
}

func (s *stubSnapshots) Batches(ctx context.Context, session string) ([]models.Batch, error) {
	return s.batches, s.hit(snapshotBatches)
}

func (s *stubSnapshots) StudentGroups(ctx context.Context, session string) ([]models.StudentGroup, error) {
	return s.groups, s.hit(snapshotStudents)
}

func (s *stubSnapshots) ClassLogs(ctx context.Context, session string) ([]models.ClassLog, error) {
	return s.logs, s.hit(snapshotClassLogs)
}

func (s *stubSnapshots) Summary(ctx context.Context, session string) ([]models.AttendanceSummaryRow, error) {
	return s.summary, s.hit(snapshotSummary)
}

func (s *stubSnapshots) RefreshClassLogs(ctx context.Context, session string) error {
	s.refreshes = append(s.refreshes, snapshotClassLogs)
	return s.errs["refresh_"+snapshotClassLogs]
}

func (s *stubSnapshots) RefreshSummary(ctx context.Context, session string) error {
	s.refreshes = append(s.refreshes, snapshotSummary)
	return s.errs["refresh_"+snapshotSummary]
}

func (s *stubSnapshots) Invalidate(ctx context.Context, session string) error {
	s.calls["invalidate"]++
	return nil
}

// memCache is a JSON round-tripping CacheRepository.
type memCache struct {
	items   map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			c.deleted = append(c.deleted, k)
		}
	}
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}
