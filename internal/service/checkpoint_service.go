package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/pkg/config"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
	"github.com/guardwise/guardwise-api/pkg/qrtoken"
)

type checkpointRepository interface {
	List(ctx context.Context, zoneName, search string) ([]models.Checkpoint, error)
	FindByID(ctx context.Context, id string) (*models.Checkpoint, error)
	Create(ctx context.Context, checkpoint *models.Checkpoint) error
	Update(ctx context.Context, checkpoint *models.Checkpoint) error
	UpdateNFCConfig(ctx context.Context, id string, cfg models.NFCConfig) error
	UpdateQRConfig(ctx context.Context, id string, cfg models.QRConfig) error
	Delete(ctx context.Context, id string) error
}

// SaveCheckpointRequest creates or updates a checkpoint.
type SaveCheckpointRequest struct {
	Name      string   `json:"name" validate:"required"`
	ZoneID    string   `json:"zone_id" validate:"required"`
	ZoneName  string   `json:"zone_name" validate:"required"`
	ScanTypes []string `json:"scan_types" validate:"required,min=1,dive,oneof=nfc qr dynamic-qr"`
	TagID     string   `json:"tag_id"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    string   `json:"status"`
}

// UpdateQRConfigRequest reconfigures a checkpoint's QR behaviour.
type UpdateQRConfigRequest struct {
	Payload            string `json:"payload"`
	Size               int    `json:"size" validate:"min=0"`
	Dynamic            bool   `json:"dynamic"`
	RotateEveryMinutes int    `json:"rotate_every_minutes" validate:"min=0"`
}

// UpdateNFCConfigRequest reconfigures a checkpoint's NFC tag.
type UpdateNFCConfigRequest struct {
	Payload   string `json:"payload"`
	TagSerial string `json:"tag_serial"`
}

// CheckpointService owns checkpoint CRUD, scan-type rules, and the QR
// payload computation shared by the admin preview and the public
// display.
type CheckpointService struct {
	repo      checkpointRepository
	audit     *AuditService
	qr        config.QRConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCheckpointService constructs a CheckpointService.
func NewCheckpointService(repo checkpointRepository, audit *AuditService, qr config.QRConfig, validate *validator.Validate, logger *zap.Logger) *CheckpointService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckpointService{repo: repo, audit: audit, qr: qr, validator: validate, logger: logger}
}

// normalizeScanTypes deduplicates the set and enforces that qr and
// dynamic-qr are mutually exclusive; dynamic-qr wins when both appear.
func normalizeScanTypes(raw []string) pq.StringArray {
	seen := map[models.ScanType]bool{}
	var out pq.StringArray
	for _, value := range raw {
		t := models.ScanType(value)
		if !t.Valid() || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, string(t))
	}
	if seen[models.ScanTypeDynamicQR] && seen[models.ScanTypeQR] {
		filtered := out[:0]
		for _, value := range out {
			if models.ScanType(value) != models.ScanTypeQR {
				filtered = append(filtered, value)
			}
		}
		out = filtered
	}
	return out
}

// List returns checkpoints, optionally filtered.
func (s *CheckpointService) List(ctx context.Context, zoneName, search string) ([]models.Checkpoint, error) {
	checkpoints, err := s.repo.List(ctx, zoneName, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list checkpoints")
	}
	return checkpoints, nil
}

// Get loads one checkpoint.
func (s *CheckpointService) Get(ctx context.Context, id string) (*models.Checkpoint, error) {
	checkpoint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "checkpoint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load checkpoint")
	}
	return checkpoint, nil
}

// Create stores a new checkpoint.
func (s *CheckpointService) Create(ctx context.Context, actor string, req SaveCheckpointRequest) (*models.Checkpoint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checkpoint payload")
	}

	checkpoint := &models.Checkpoint{
		Name:      req.Name,
		ZoneID:    req.ZoneID,
		ZoneName:  req.ZoneName,
		ScanTypes: normalizeScanTypes(req.ScanTypes),
		TagID:     req.TagID,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    req.Status,
	}
	if checkpoint.Status == "" {
		checkpoint.Status = "active"
	}
	if err := s.repo.Create(ctx, checkpoint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create checkpoint")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionCreate, "checkpoint", checkpoint.ID,
			fmt.Sprintf("created checkpoint %q in %s", checkpoint.Name, checkpoint.ZoneName))
	}
	return checkpoint, nil
}

// Update modifies an existing checkpoint.
func (s *CheckpointService) Update(ctx context.Context, actor, id string, req SaveCheckpointRequest) (*models.Checkpoint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checkpoint payload")
	}

	checkpoint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	checkpoint.Name = req.Name
	checkpoint.ZoneID = req.ZoneID
	checkpoint.ZoneName = req.ZoneName
	checkpoint.ScanTypes = normalizeScanTypes(req.ScanTypes)
	checkpoint.TagID = req.TagID
	checkpoint.Location = req.Location
	checkpoint.Latitude = req.Latitude
	checkpoint.Longitude = req.Longitude
	if req.Status != "" {
		checkpoint.Status = req.Status
	}

	if err := s.repo.Update(ctx, checkpoint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update checkpoint")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionUpdate, "checkpoint", checkpoint.ID,
			fmt.Sprintf("updated checkpoint %q", checkpoint.Name))
	}
	return checkpoint, nil
}

// Delete removes a checkpoint.
func (s *CheckpointService) Delete(ctx context.Context, actor, id string) error {
	checkpoint, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete checkpoint")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionDelete, "checkpoint", id,
			fmt.Sprintf("deleted checkpoint %q", checkpoint.Name))
	}
	return nil
}

// UpdateQRConfig replaces a checkpoint's QR configuration. Enabling
// dynamic mode adds the dynamic-qr scan type (dropping plain qr) and
// vice versa.
func (s *CheckpointService) UpdateQRConfig(ctx context.Context, actor, id string, req UpdateQRConfigRequest) (*models.Checkpoint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid qr config payload")
	}

	checkpoint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rotate := req.RotateEveryMinutes
	if rotate <= 0 {
		rotate = s.qr.DefaultRotateMinutes
	}
	size := req.Size
	if size < s.qr.MinImageSize {
		size = s.qr.MinImageSize
	}
	cfg := models.QRConfig{
		Payload:            req.Payload,
		Size:               size,
		Dynamic:            req.Dynamic,
		RotateEveryMinutes: rotate,
		Configured:         true,
		LastGeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	wanted := string(models.ScanTypeQR)
	if req.Dynamic {
		wanted = string(models.ScanTypeDynamicQR)
	}
	types := []string{wanted}
	for _, t := range checkpoint.ScanTypes {
		if t != string(models.ScanTypeQR) && t != string(models.ScanTypeDynamicQR) {
			types = append(types, t)
		}
	}
	checkpoint.ScanTypes = normalizeScanTypes(types)
	checkpoint.QRConfig = cfg

	if err := s.repo.Update(ctx, checkpoint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update qr config")
	}
	if s.audit != nil {
		mode := "static"
		if req.Dynamic {
			mode = fmt.Sprintf("dynamic, rotating every %d min", rotate)
		}
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionUpdate, "checkpoint", id,
			fmt.Sprintf("reconfigured QR for %q (%s)", checkpoint.Name, mode))
	}
	return checkpoint, nil
}

// UpdateNFCConfig replaces a checkpoint's NFC configuration.
func (s *CheckpointService) UpdateNFCConfig(ctx context.Context, actor, id string, req UpdateNFCConfigRequest) (*models.Checkpoint, error) {
	checkpoint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	checkpoint.NFCConfig = models.NFCConfig{
		Payload:          req.Payload,
		TagSerial:        req.TagSerial,
		Configured:       true,
		LastConfiguredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.UpdateNFCConfig(ctx, id, checkpoint.NFCConfig); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update nfc config")
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, models.AuditModuleCheckpoints, models.AuditActionUpdate, "checkpoint", id,
			fmt.Sprintf("configured NFC tag for %q", checkpoint.Name))
	}
	return checkpoint, nil
}

// Display computes the current (possibly rotating) QR payload for a
// checkpoint at the given instant. The admin preview and the public
// display endpoint both call this.
func (s *CheckpointService) Display(ctx context.Context, id string, now time.Time) (*models.CheckpointDisplay, error) {
	checkpoint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	base := checkpoint.QRConfig.Payload
	if base == "" {
		base = fmt.Sprintf("checkpoint:%s|tag:%s|zone:%s", checkpoint.ID, checkpoint.TagID, checkpoint.ZoneName)
	}
	dynamic := checkpoint.QRConfig.Dynamic || checkpoint.HasScanType(models.ScanTypeDynamicQR)
	rotate := checkpoint.QRConfig.RotateEveryMinutes
	if rotate <= 0 {
		rotate = s.qr.DefaultRotateMinutes
	}
	size := checkpoint.QRConfig.Size
	if size < s.qr.MinImageSize {
		size = s.qr.MinImageSize
	}

	payload := qrtoken.Payload(base, dynamic, now, rotate)
	display := &models.CheckpointDisplay{
		CheckpointID:   checkpoint.ID,
		CheckpointName: checkpoint.Name,
		ZoneName:       checkpoint.ZoneName,
		Location:       checkpoint.Location,
		Dynamic:        dynamic,
		Payload:        payload,
		ImageURL:       s.imageURL(payload, size),
	}
	if dynamic {
		display.RotateEveryMinutes = rotate
		display.Slot = qrtoken.Slot(now, rotate)
		display.SecondsUntilRotate = qrtoken.SecondsUntilRotation(now, rotate)
	}
	return display, nil
}

func (s *CheckpointService) imageURL(payload string, size int) string {
	values := url.Values{}
	values.Set("data", payload)
	values.Set("size", fmt.Sprintf("%dx%d", size, size))
	return s.qr.RenderEndpoint + "?" + values.Encode()
}

// CountDynamicQR counts checkpoints carrying the dynamic-qr scan type.
func CountDynamicQR(checkpoints []models.Checkpoint) int {
	total := 0
	for i := range checkpoints {
		if checkpoints[i].HasScanType(models.ScanTypeDynamicQR) {
			total++
		}
	}
	return total
}

// CountNFCConfigured counts checkpoints with a configured NFC tag.
func CountNFCConfigured(checkpoints []models.Checkpoint) int {
	total := 0
	for i := range checkpoints {
		if checkpoints[i].NFCConfig.Configured {
			total++
		}
	}
	return total
}
