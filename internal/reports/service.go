package reports

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gustalxpes/foto-nutri/internal/blob"
	"github.com/gustalxpes/foto-nutri/internal/goals"
	"github.com/gustalxpes/foto-nutri/internal/storage"
)

// Service handles reports business logic
type Service struct {
	reportsStorage storage.ReportsStorage
	generator      *Generator
	blobStore      blob.Store
	presignTTL     int
	localMode      bool // true if no S3 configured
}

// NewService creates a new reports service. blobStore may be nil; report
// bytes are then kept next to the metadata (local mode).
func NewService(
	reportsStorage storage.ReportsStorage,
	mealsStorage storage.MealsStorage,
	goalsService *goals.Service,
	blobStore blob.Store,
	presignTTLSeconds int,
) *Service {
	return &Service{
		reportsStorage: reportsStorage,
		generator:      NewGenerator(mealsStorage, goalsService),
		blobStore:      blobStore,
		presignTTL:     presignTTLSeconds,
		localMode:      blobStore == nil,
	}
}

// CreateReport generates a weekly report and persists the artifact.
func (s *Service) CreateReport(ctx context.Context, userID string, req CreateReportRequest) (*storage.ReportMeta, error) {
	if req.Format != FormatPDF && req.Format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	loc := time.UTC
	if req.TZ != "" {
		var err error
		loc, err = time.LoadLocation(req.TZ)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
	}

	reference := time.Now().In(loc)
	if req.Date != "" {
		var err error
		reference, err = time.ParseInLocation("2006-01-02", req.Date, loc)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	data, err := s.generator.GenerateWeekly(ctx, userID, req.Format, reference, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	from := reference.AddDate(0, 0, -6)
	report := &storage.ReportMeta{
		UserID:    userID,
		Format:    req.Format,
		FromDate:  from.Format("2006-01-02"),
		ToDate:    reference.Format("2006-01-02"),
		SizeBytes: int64(len(data)),
		Status:    StatusReady,
	}

	if s.localMode {
		report.Data = data
	} else {
		objectKey := fmt.Sprintf("reports/%s/%s_%s_%s.%s",
			userID,
			report.FromDate,
			report.ToDate,
			uuid.New().String(),
			req.Format,
		)

		if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentTypeFor(req.Format)); err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}

		report.ObjectKey = &objectKey
	}

	if err := s.reportsStorage.CreateReport(ctx, report); err != nil {
		if report.ObjectKey != nil {
			if delErr := s.blobStore.DeleteObject(ctx, *report.ObjectKey); delErr != nil {
				log.Printf("WARN: failed to delete orphaned report object %s: %v", *report.ObjectKey, delErr)
			}
		}
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}

	return report, nil
}

// GetReport retrieves a report owned by userID.
func (s *Service) GetReport(ctx context.Context, userID string, id uuid.UUID) (*storage.ReportMeta, error) {
	meta, err := s.reportsStorage.GetReport(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrReportNotFound
	}
	return meta, nil
}

// ListReports lists the user's reports, newest first.
func (s *Service) ListReports(ctx context.Context, userID string, limit, offset int) ([]storage.ReportMeta, error) {
	return s.reportsStorage.ListReports(ctx, userID, limit, offset)
}

// DeleteReport removes the artifact and its metadata.
func (s *Service) DeleteReport(ctx context.Context, userID string, id uuid.UUID) error {
	meta, err := s.GetReport(ctx, userID, id)
	if err != nil {
		return err
	}

	if !s.localMode && meta.ObjectKey != nil {
		if err := s.blobStore.DeleteObject(ctx, *meta.ObjectKey); err != nil {
			// Metadata deletion is more important than the blob
			log.Printf("WARN: failed to delete report object %s: %v", *meta.ObjectKey, err)
		}
	}

	return s.reportsStorage.DeleteReport(ctx, userID, id)
}

// DownloadURL returns a presigned URL in S3 mode, or an empty string when the
// caller should stream the bytes itself (local mode).
func (s *Service) DownloadURL(ctx context.Context, userID string, id uuid.UUID) (string, error) {
	meta, err := s.GetReport(ctx, userID, id)
	if err != nil {
		return "", err
	}

	if s.localMode || meta.ObjectKey == nil {
		return "", nil
	}

	return s.blobStore.PresignGet(ctx, *meta.ObjectKey, s.presignTTL)
}

// Data returns the raw report bytes for local-mode streaming.
func (s *Service) Data(ctx context.Context, userID string, id uuid.UUID) ([]byte, string, error) {
	meta, err := s.GetReport(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	if !s.localMode && meta.ObjectKey != nil {
		data, err := s.blobStore.GetObject(ctx, *meta.ObjectKey)
		return data, contentTypeFor(meta.Format), err
	}

	return meta.Data, contentTypeFor(meta.Format), nil
}

func (s *Service) toDTO(meta *storage.ReportMeta) ReportDTO {
	return ReportDTO{
		ID:          meta.ID,
		Format:      meta.Format,
		From:        meta.FromDate,
		To:          meta.ToDate,
		DownloadURL: fmt.Sprintf("/v1/reports/%s/download", meta.ID.String()),
		SizeBytes:   meta.SizeBytes,
		Status:      meta.Status,
		CreatedAt:   meta.CreatedAt,
	}
}

func contentTypeFor(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}
