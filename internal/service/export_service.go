package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
	"github.com/noah-isme/enroll-flow-api/pkg/export"
	"github.com/noah-isme/enroll-flow-api/pkg/storage"
)

type exportSessionReader interface {
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	Summary(ctx context.Context, id string) (*dto.PricingSummary, error)
}

// ExportService renders a session's pricing summary into a downloadable
// artifact and hands back a signed URL for it.
type ExportService struct {
	sessions exportSessionReader
	pdf      *export.PDFExporter
	csv      *export.CSVExporter
	storage  *storage.LocalStorage
	signer   *storage.SignedURLSigner
	metrics  *MetricsService
	logger   *zap.Logger

	downloadPath string
}

// NewExportService wires the exporters against local storage. downloadPath
// is the route the signed token is appended to.
func NewExportService(
	sessions exportSessionReader,
	store *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	metrics *MetricsService,
	downloadPath string,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions:     sessions,
		pdf:          export.NewPDFExporter(),
		csv:          export.NewCSVExporter(),
		storage:      store,
		signer:       signer,
		metrics:      metrics,
		logger:       logger,
		downloadPath: downloadPath,
	}
}

// ExportSummary renders the summary in the requested format, stores it, and
// returns a signed download URL.
func (s *ExportService) ExportSummary(ctx context.Context, sessionID string, req dto.ExportSummaryRequest) (*dto.ExportSummaryResponse, error) {
	started := time.Now()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary, err := s.sessions.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	data := summaryDataset(sess, summary)

	var payload []byte
	var ext string
	switch req.Format {
	case "pdf":
		ext = "pdf"
		payload, err = s.pdf.Render(data)
	case "csv":
		ext = "csv"
		payload, err = s.csv.Render(data)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render the summary export")
	}

	exportID := uuid.NewString()
	relPath := fmt.Sprintf("summaries/%s-%s.%s", sessionID, exportID, ext)
	if _, err := s.storage.Save(relPath, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store the summary export")
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign the download URL")
	}

	s.metrics.ObserveExport(req.Format, time.Since(started))
	s.logger.Info("summary exported",
		zap.String("session_id", sessionID),
		zap.String("format", req.Format),
		zap.String("path", relPath),
	)

	return &dto.ExportSummaryResponse{
		URL:       s.downloadPath + "?token=" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// OpenDownload validates a signed token and opens the artifact for
// streaming. Expired or tampered tokens fail with a typed error.
func (s *ExportService) OpenDownload(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid or expired download token")
	}
	f, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	return f, nil
}

// CleanupExpired drops artifacts older than the TTL.
func (s *ExportService) CleanupExpired(ttl time.Duration) {
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
}

func summaryDataset(sess *dto.SessionResponse, summary *dto.PricingSummary) export.Dataset {
	paymentType := ""
	if summary.PaymentType != nil {
		paymentType = string(*summary.PaymentType)
	}

	rows := []export.Row{
		{Field: "Package", Value: summary.PackageName},
		{Field: "Family name", Value: sess.State.Contact.FamilyName},
		{Field: "Given name", Value: sess.State.Contact.GivenName},
		{Field: "Email", Value: sess.State.Contact.Email},
		{Field: "Billing country", Value: sess.State.Contact.BillingCountry},
		{Field: "Payment type", Value: paymentType},
		{Field: "Base price", Value: summary.Currency + " " + summary.BasePrice.StringFixed(2)},
		{Field: "Effective price", Value: summary.FormattedEffective},
		{Field: "Payable now", Value: summary.FormattedPayable},
	}
	if summary.PromoApplied {
		rows = append(rows,
			export.Row{Field: "Promocode", Value: sess.State.Promocode},
			export.Row{Field: "Discount", Value: summary.Currency + " " + summary.PromoDiscount.StringFixed(2)},
		)
	}
	if summary.MonthlyAmount != nil && summary.Months != nil {
		rows = append(rows, export.Row{
			Field: "Installment",
			Value: fmt.Sprintf("%d x %s %s", *summary.Months, summary.Currency, summary.MonthlyAmount.StringFixed(2)),
		})
	}
	if summary.Foreign != nil {
		rows = append(rows, export.Row{Field: "Approx. in " + summary.Foreign.Currency, Value: summary.Foreign.Formatted})
	}

	return export.Dataset{
		Title:    "Enrollment Summary",
		Subtitle: summary.PackageName,
		Rows:     rows,
	}
}
