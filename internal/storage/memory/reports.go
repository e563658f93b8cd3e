package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

// ReportsMemoryStorage — in-memory storage for generated weekly reports
type ReportsMemoryStorage struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*storage.ReportMeta
	byUser  map[string][]uuid.UUID
}

func NewReportsMemoryStorage() *ReportsMemoryStorage {
	return &ReportsMemoryStorage{
		reports: make(map[uuid.UUID]*storage.ReportMeta),
		byUser:  make(map[string][]uuid.UUID),
	}
}

func cloneReport(r *storage.ReportMeta) *storage.ReportMeta {
	clone := *r
	clone.Data = append([]byte(nil), r.Data...)
	return &clone
}

func (s *ReportsMemoryStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	clone := cloneReport(report)
	s.reports[clone.ID] = clone
	s.byUser[clone.UserID] = append(s.byUser[clone.UserID], clone.ID)

	return nil
}

func (s *ReportsMemoryStorage) GetReport(ctx context.Context, userID string, id uuid.UUID) (*storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok || report.UserID != userID {
		return nil, nil
	}

	return cloneReport(report), nil
}

func (s *ReportsMemoryStorage) ListReports(ctx context.Context, userID string, limit, offset int) ([]storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.ReportMeta, 0)
	for _, id := range s.byUser[userID] {
		if report, ok := s.reports[id]; ok {
			clone := cloneReport(report)
			clone.Data = nil // listings carry metadata only
			result = append(result, *clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(result) {
			return []storage.ReportMeta{}, nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func (s *ReportsMemoryStorage) DeleteReport(ctx context.Context, userID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok || report.UserID != userID {
		return ErrNotFound
	}

	delete(s.reports, id)

	ids := s.byUser[userID]
	for i, rid := range ids {
		if rid == id {
			s.byUser[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	return nil
}
