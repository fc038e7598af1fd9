package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/pkg/config"
)

func TestNormalizeScanTypesDropsStaticQRWhenDynamic(t *testing.T) {
	out := normalizeScanTypes([]string{"qr", "nfc", "dynamic-qr", "qr"})
	assert.Equal(t, pq.StringArray{"nfc", "dynamic-qr"}, out)
}

func TestNormalizeScanTypesKeepsStaticQRAlone(t *testing.T) {
	out := normalizeScanTypes([]string{"qr", "nfc"})
	assert.Equal(t, pq.StringArray{"qr", "nfc"}, out)
}

func TestNormalizeScanTypesIgnoresUnknown(t *testing.T) {
	out := normalizeScanTypes([]string{"barcode", "nfc"})
	assert.Equal(t, pq.StringArray{"nfc"}, out)
}

type checkpointStoreStub struct {
	checkpoints []models.Checkpoint
	updated     []models.Checkpoint
}

func (s *checkpointStoreStub) List(ctx context.Context, zoneName, search string) ([]models.Checkpoint, error) {
	return s.checkpoints, nil
}

func (s *checkpointStoreStub) FindByID(ctx context.Context, id string) (*models.Checkpoint, error) {
	for i := range s.checkpoints {
		if s.checkpoints[i].ID == id {
			return &s.checkpoints[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *checkpointStoreStub) Create(ctx context.Context, checkpoint *models.Checkpoint) error {
	s.checkpoints = append(s.checkpoints, *checkpoint)
	return nil
}

func (s *checkpointStoreStub) Update(ctx context.Context, checkpoint *models.Checkpoint) error {
	s.updated = append(s.updated, *checkpoint)
	return nil
}

func (s *checkpointStoreStub) UpdateNFCConfig(ctx context.Context, id string, cfg models.NFCConfig) error {
	return nil
}

func (s *checkpointStoreStub) UpdateQRConfig(ctx context.Context, id string, cfg models.QRConfig) error {
	return nil
}

func (s *checkpointStoreStub) Delete(ctx context.Context, id string) error {
	return nil
}

func qrSettings() config.QRConfig {
	return config.QRConfig{
		RenderEndpoint:       "https://api.qrserver.com/v1/create-qr-code/",
		DefaultRotateMinutes: 10,
		MinImageSize:         420,
	}
}

func TestDisplayStaticCheckpoint(t *testing.T) {
	repo := &checkpointStoreStub{checkpoints: []models.Checkpoint{{
		ID:        "c1",
		Name:      "Main Gate",
		ZoneName:  "Zone A",
		TagID:     "TAG-001",
		ScanTypes: pq.StringArray{"qr"},
	}}}
	svc := NewCheckpointService(repo, nil, qrSettings(), nil, nil)

	now := time.Date(2026, 2, 6, 9, 3, 17, 0, time.UTC)
	display, err := svc.Display(context.Background(), "c1", now)
	require.NoError(t, err)
	assert.False(t, display.Dynamic)
	assert.Equal(t, "checkpoint:c1|tag:TAG-001|zone:Zone A", display.Payload)
	assert.Zero(t, display.Slot)
	assert.Zero(t, display.SecondsUntilRotate)
	assert.Contains(t, display.ImageURL, "size=420x420")
}

func TestDisplayDynamicCheckpointRotates(t *testing.T) {
	repo := &checkpointStoreStub{checkpoints: []models.Checkpoint{{
		ID:        "c1",
		Name:      "Main Gate",
		ZoneName:  "Zone A",
		TagID:     "TAG-001",
		ScanTypes: pq.StringArray{"dynamic-qr"},
		QRConfig:  models.QRConfig{Dynamic: true, RotateEveryMinutes: 10, Configured: true},
	}}}
	svc := NewCheckpointService(repo, nil, qrSettings(), nil, nil)

	now := time.Date(2026, 2, 6, 9, 3, 17, 0, time.UTC)
	first, err := svc.Display(context.Background(), "c1", now)
	require.NoError(t, err)
	assert.True(t, first.Dynamic)
	assert.Contains(t, first.Payload, "|token:")
	assert.Equal(t, 403, first.SecondsUntilRotate)

	second, err := svc.Display(context.Background(), "c1", now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, first.Slot+1, second.Slot)
	assert.NotEqual(t, first.Payload, second.Payload)
}

func TestUpdateQRConfigSwitchesScanType(t *testing.T) {
	repo := &checkpointStoreStub{checkpoints: []models.Checkpoint{{
		ID:        "c1",
		Name:      "Main Gate",
		ScanTypes: pq.StringArray{"qr", "nfc"},
	}}}
	svc := NewCheckpointService(repo, nil, qrSettings(), nil, nil)

	updated, err := svc.UpdateQRConfig(context.Background(), "admin", "c1", UpdateQRConfigRequest{Dynamic: true})
	require.NoError(t, err)
	assert.True(t, updated.QRConfig.Dynamic)
	assert.Equal(t, 10, updated.QRConfig.RotateEveryMinutes)
	assert.Equal(t, 420, updated.QRConfig.Size)
	assert.True(t, updated.HasScanType(models.ScanTypeDynamicQR))
	assert.False(t, updated.HasScanType(models.ScanTypeQR))
	assert.True(t, updated.HasScanType(models.ScanTypeNFC))
}

func TestCountHelpers(t *testing.T) {
	checkpoints := []models.Checkpoint{
		{ID: "c1", ScanTypes: pq.StringArray{"dynamic-qr"}},
		{ID: "c2", ScanTypes: pq.StringArray{"qr"}, NFCConfig: models.NFCConfig{Configured: true}},
		{ID: "c3", ScanTypes: pq.StringArray{"nfc"}, NFCConfig: models.NFCConfig{Configured: true}},
	}
	assert.Equal(t, 1, CountDynamicQR(checkpoints))
	assert.Equal(t, 2, CountNFCConfigured(checkpoints))
}
