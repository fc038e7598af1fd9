package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwise/guardwise-api/internal/middleware"
	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/internal/service"
	"github.com/guardwise/guardwise-api/pkg/config"
	"github.com/guardwise/guardwise-api/pkg/response"
)

func testContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestGuardListRejectsUnknownStatus(t *testing.T) {
	h := NewGuardHandler(nil)
	c, w := testContext(t, http.MethodGet, "/guards?status=vacationing")

	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleListRejectsUnknownStatus(t *testing.T) {
	h := NewScheduleHandler(nil)
	c, w := testContext(t, http.MethodGet, "/schedules?status=archived")

	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatrolListRejectsUnknownScanMethod(t *testing.T) {
	h := NewPatrolHandler(nil)
	c, w := testContext(t, http.MethodGet, "/patrols?scanMethod=barcode")

	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityCheckRequiresParams(t *testing.T) {
	h := NewAvailabilityHandler(nil)
	c, w := testContext(t, http.MethodGet, "/availability/check?guardId=g1")

	h.Check(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActorFromFallsBackToSystem(t *testing.T) {
	c, _ := testContext(t, http.MethodPost, "/guards")
	assert.Equal(t, "system", actorFrom(c))

	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "admin@guardwise.local"})
	assert.Equal(t, "admin@guardwise.local", actorFrom(c))
}

type displayRepoStub struct {
	checkpoint models.Checkpoint
}

func (s *displayRepoStub) List(ctx context.Context, zoneName, search string) ([]models.Checkpoint, error) {
	return []models.Checkpoint{s.checkpoint}, nil
}

func (s *displayRepoStub) FindByID(ctx context.Context, id string) (*models.Checkpoint, error) {
	if id != s.checkpoint.ID {
		return nil, sql.ErrNoRows
	}
	return &s.checkpoint, nil
}

func (s *displayRepoStub) Create(ctx context.Context, checkpoint *models.Checkpoint) error { return nil }
func (s *displayRepoStub) Update(ctx context.Context, checkpoint *models.Checkpoint) error { return nil }
func (s *displayRepoStub) UpdateNFCConfig(ctx context.Context, id string, cfg models.NFCConfig) error {
	return nil
}
func (s *displayRepoStub) UpdateQRConfig(ctx context.Context, id string, cfg models.QRConfig) error {
	return nil
}
func (s *displayRepoStub) Delete(ctx context.Context, id string) error { return nil }

func TestCheckpointDisplayEndpoint(t *testing.T) {
	repo := &displayRepoStub{checkpoint: models.Checkpoint{
		ID:        "c1",
		Name:      "Main Gate",
		ZoneName:  "Zone A",
		TagID:     "TAG-001",
		ScanTypes: pq.StringArray{"qr"},
	}}
	svc := service.NewCheckpointService(repo, nil, config.QRConfig{
		RenderEndpoint:       "https://api.qrserver.com/v1/create-qr-code/",
		DefaultRotateMinutes: 10,
		MinImageSize:         420,
	}, nil, nil)
	h := NewCheckpointHandler(svc)

	c, w := testContext(t, http.MethodGet, "/display/checkpoints/c1")
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	h.Display(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var display models.CheckpointDisplay
	require.NoError(t, json.Unmarshal(payload, &display))
	assert.Equal(t, "checkpoint:c1|tag:TAG-001|zone:Zone A", display.Payload)
	assert.False(t, display.Dynamic)
}

type patrolStoreStub struct {
	created []models.PatrolHistory
}

func (s *patrolStoreStub) List(ctx context.Context, filter models.PatrolHistoryFilter) ([]models.PatrolHistory, error) {
	return nil, nil
}

func (s *patrolStoreStub) Create(ctx context.Context, record *models.PatrolHistory) error {
	s.created = append(s.created, *record)
	return nil
}

type availabilityStoreStub struct{}

func (s availabilityStoreStub) ListRelevant(ctx context.Context, guardID, startDate, endDate string) ([]models.GuardAvailability, error) {
	return nil, nil
}

func TestPatrolRecordDerivesStatus(t *testing.T) {
	store := &patrolStoreStub{}
	svc := service.NewPatrolService(store, availabilityStoreStub{}, nil, nil)
	h := NewPatrolHandler(svc)

	body := `{"date":"2026-02-06","guard_id":"g1","guard_name":"Rahim","zone_name":"Zone A",` +
		`"checkpoint_name":"Main Gate","scan_method":"nfc","slot_time":"09:00","grace_time_minutes":10,"scan_at":"09:25"}`
	c, w := testContext(t, http.MethodPost, "/patrols")
	c.Request.Body = io.NopCloser(strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Record(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, models.PatrolStatusLate, store.created[0].Status)
	require.NotNil(t, store.created[0].LateByMinutes)
	assert.Equal(t, 25, *store.created[0].LateByMinutes)
}

func TestPatrolRecordRejectsClientStatus(t *testing.T) {
	store := &patrolStoreStub{}
	svc := service.NewPatrolService(store, availabilityStoreStub{}, nil, nil)
	h := NewPatrolHandler(svc)

	// A submitted status field is ignored; with no scan and no
	// availability hit the visit lands as missed.
	body := `{"date":"2026-02-06","guard_id":"g1","scan_method":"qr","slot_time":"09:00","status":"completed"}`
	c, w := testContext(t, http.MethodPost, "/patrols")
	c.Request.Body = io.NopCloser(strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Record(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, models.PatrolStatusMissed, store.created[0].Status)
}

func TestCheckpointDisplayUnknownID(t *testing.T) {
	repo := &displayRepoStub{checkpoint: models.Checkpoint{ID: "c1"}}
	svc := service.NewCheckpointService(repo, nil, config.QRConfig{MinImageSize: 420, DefaultRotateMinutes: 10}, nil, nil)
	h := NewCheckpointHandler(svc)

	c, w := testContext(t, http.MethodGet, "/display/checkpoints/nope")
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Display(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
