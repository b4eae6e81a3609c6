package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/pkg/config"
	"github.com/noah-isme/enroll-flow-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) (*ExportService, *SessionService) {
	t.Helper()
	sessions := newSessionServiceForTest(t, config.SessionConfig{})
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Minute)
	return NewExportService(sessions, store, signer, nil, "/api/v1/exports/download", zap.NewNop()), sessions
}

func TestExportSummaryCSVRoundTrip(t *testing.T) {
	svc, sessions := newExportServiceForTest(t)
	id := createTestSession(t, sessions)
	ctx := context.Background()

	_, err := sessions.ApplyPromocode(ctx, id, dto.ApplyPromoRequest{Code: "SAVE20"})
	require.NoError(t, err)

	resp, err := svc.ExportSummary(ctx, id, dto.ExportSummaryRequest{Format: "csv"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.URL, "/api/v1/exports/download?token="))
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	token := strings.TrimPrefix(resp.URL, "/api/v1/exports/download?token=")
	f, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)
	content := string(body)
	assert.Contains(t, content, "Effective price")
	assert.Contains(t, content, "RM 2,544.00")
	assert.Contains(t, content, "SAVE20")
}

func TestExportSummaryPDFProducesDocument(t *testing.T) {
	svc, sessions := newExportServiceForTest(t)
	id := createTestSession(t, sessions)

	resp, err := svc.ExportSummary(context.Background(), id, dto.ExportSummaryRequest{Format: "pdf"})
	require.NoError(t, err)

	token := strings.TrimPrefix(resp.URL, "/api/v1/exports/download?token=")
	f, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer f.Close()

	header := make([]byte, 4)
	_, err = io.ReadFull(f, header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(header))
}

func TestExportDownloadRejectsTamperedToken(t *testing.T) {
	svc, sessions := newExportServiceForTest(t)
	id := createTestSession(t, sessions)

	resp, err := svc.ExportSummary(context.Background(), id, dto.ExportSummaryRequest{Format: "csv"})
	require.NoError(t, err)

	token := strings.TrimPrefix(resp.URL, "/api/v1/exports/download?token=")
	_, err = svc.OpenDownload(token + "x")
	assert.Error(t, err)
}

func TestExportSummaryUnknownSession(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	_, err := svc.ExportSummary(context.Background(), "missing", dto.ExportSummaryRequest{Format: "csv"})
	assert.Error(t, err)
}
