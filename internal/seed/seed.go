package seed

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	"github.com/guardwise/guardwise-api/internal/repository"
	"github.com/guardwise/guardwise-api/internal/service"
)

// Seeder populates empty tables with a small demo dataset so a fresh
// install has something to show. Each table is seeded independently and
// only when it holds no rows.
type Seeder struct {
	guards       *repository.GuardRepository
	zones        *repository.ZoneRepository
	checkpoints  *repository.CheckpointRepository
	schedules    *repository.ScheduleRepository
	availability *repository.AvailabilityRepository
	rosters      *repository.RosterRepository
	patrols      *repository.PatrolHistoryRepository
	users        *repository.UserRepository
	logger       *zap.Logger
}

// New constructs a Seeder.
func New(
	guards *repository.GuardRepository,
	zones *repository.ZoneRepository,
	checkpoints *repository.CheckpointRepository,
	schedules *repository.ScheduleRepository,
	availability *repository.AvailabilityRepository,
	rosters *repository.RosterRepository,
	patrols *repository.PatrolHistoryRepository,
	users *repository.UserRepository,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		guards:       guards,
		zones:        zones,
		checkpoints:  checkpoints,
		schedules:    schedules,
		availability: availability,
		rosters:      rosters,
		patrols:      patrols,
		users:        users,
		logger:       logger,
	}
}

// Apply seeds every empty table.
func (s *Seeder) Apply(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", s.seedUsers},
		{"zones", s.seedZones},
		{"guards", s.seedGuards},
		{"checkpoints", s.seedCheckpoints},
		{"schedules", s.seedSchedules},
		{"availability", s.seedAvailability},
		{"rosters", s.seedRosters},
		{"patrol history", s.seedPatrolHistory},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	hash, err := service.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:           "u-admin",
		Name:         "Site Administrator",
		Email:        "admin@guardwise.local",
		PasswordHash: hash,
		Role:         "admin",
		Active:       true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("seeded admin user", zap.String("email", admin.Email))
	return nil
}

func (s *Seeder) seedZones(ctx context.Context) error {
	count, err := s.zones.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	zones := []models.Zone{
		{ID: "z-alpha", Name: "Zone A", Description: "Main building perimeter", Location: "North campus", Status: "active"},
		{ID: "z-bravo", Name: "Zone B", Description: "Warehouse and loading docks", Location: "East campus", Status: "active"},
		{ID: "z-charlie", Name: "Zone C", Description: "Parking structure", Location: "South lot", Status: "active"},
	}
	for i := range zones {
		if err := s.zones.Create(ctx, &zones[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded zones", zap.Int("count", len(zones)))
	return nil
}

func (s *Seeder) seedGuards(ctx context.Context) error {
	count, err := s.guards.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	guards := []models.Guard{
		{ID: "g-rahim", Name: "Rahim Uddin", Phone: "+8801711000001", Email: "rahim@guardwise.local", EmployeeID: "EMP-001", Status: models.GuardStatusActive, AssignedZone: "Zone A"},
		{ID: "g-karim", Name: "Karim Mia", Phone: "+8801711000002", Email: "karim@guardwise.local", EmployeeID: "EMP-002", Status: models.GuardStatusOnDuty, AssignedZone: "Zone A"},
		{ID: "g-jalal", Name: "Jalal Khan", Phone: "+8801711000003", Email: "jalal@guardwise.local", EmployeeID: "EMP-003", Status: models.GuardStatusActive, AssignedZone: "Zone B"},
		{ID: "g-sumon", Name: "Sumon Ahmed", Phone: "+8801711000004", Email: "sumon@guardwise.local", EmployeeID: "EMP-004", Status: models.GuardStatusInactive, AssignedZone: "Zone C"},
	}
	for i := range guards {
		if err := s.guards.Create(ctx, &guards[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded guards", zap.Int("count", len(guards)))
	return nil
}

func (s *Seeder) seedCheckpoints(ctx context.Context) error {
	count, err := s.checkpoints.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	checkpoints := []models.Checkpoint{
		{
			ID: "c-main-gate", Name: "Main Gate", ZoneID: "z-alpha", ZoneName: "Zone A",
			ScanTypes: pq.StringArray{"dynamic-qr"}, TagID: "TAG-001", Location: "Front entrance", Status: "active",
			QRConfig: models.QRConfig{Dynamic: true, RotateEveryMinutes: 10, Size: 420, Configured: true},
		},
		{
			ID: "c-lobby", Name: "Lobby Desk", ZoneID: "z-alpha", ZoneName: "Zone A",
			ScanTypes: pq.StringArray{"qr", "nfc"}, TagID: "TAG-002", Location: "Ground floor lobby", Status: "active",
			NFCConfig: models.NFCConfig{TagSerial: "04:A1:B2:C3", Configured: true},
		},
		{
			ID: "c-dock", Name: "Loading Dock", ZoneID: "z-bravo", ZoneName: "Zone B",
			ScanTypes: pq.StringArray{"nfc"}, TagID: "TAG-003", Location: "East dock door", Status: "active",
			NFCConfig: models.NFCConfig{TagSerial: "04:D4:E5:F6", Configured: true},
		},
		{
			ID: "c-parking", Name: "Parking Ramp", ZoneID: "z-charlie", ZoneName: "Zone C",
			ScanTypes: pq.StringArray{"qr"}, TagID: "TAG-004", Location: "Level 1 ramp", Status: "active",
		},
	}
	for i := range checkpoints {
		if err := s.checkpoints.Create(ctx, &checkpoints[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded checkpoints", zap.Int("count", len(checkpoints)))
	return nil
}

func (s *Seeder) seedSchedules(ctx context.Context) error {
	count, err := s.schedules.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	schedules := []models.Schedule{
		{
			ID: "s-rahim-gate", GuardID: "g-rahim", GuardName: "Rahim Uddin",
			CheckpointID: "c-main-gate", CheckpointName: "Main Gate",
			StartDate: "2026-02-01", EndDate: "2026-02-28", ZoneName: "Zone A",
			TimeSlots: models.ScheduleSlots{
				{ID: "c-main-gate-08:00", Time: "08:00", Label: "8:00 AM"},
				{ID: "c-main-gate-14:00", Time: "14:00", Label: "2:00 PM"},
			},
			GraceTimeMinutes: 15, Status: models.ScheduleStatusActive,
		},
		{
			ID: "s-karim-lobby", GuardID: "g-karim", GuardName: "Karim Mia",
			CheckpointID: "c-lobby", CheckpointName: "Lobby Desk",
			StartDate: "2026-02-01", EndDate: "2026-02-28", ZoneName: "Zone A",
			TimeSlots: models.ScheduleSlots{
				{ID: "c-lobby-10:00", Time: "10:00", Label: "10:00 AM"},
			},
			GraceTimeMinutes: 15, Status: models.ScheduleStatusActive,
		},
		{
			ID: "s-jalal-dock", GuardID: "g-jalal", GuardName: "Jalal Khan",
			CheckpointID: "c-dock", CheckpointName: "Loading Dock",
			StartDate: "2026-02-01", EndDate: "2026-02-28", ZoneName: "Zone B",
			TimeSlots: models.ScheduleSlots{
				{ID: "c-dock-09:00", Time: "09:00", Label: "9:00 AM"},
				{ID: "c-dock-21:00", Time: "21:00", Label: "9:00 PM"},
			},
			GraceTimeMinutes: 20, Status: models.ScheduleStatusActive,
		},
	}
	if err := s.schedules.BulkCreate(ctx, schedules); err != nil {
		return err
	}
	s.logger.Info("seeded schedules", zap.Int("count", len(schedules)))
	return nil
}

func (s *Seeder) seedAvailability(ctx context.Context) error {
	records, err := s.availability.List(ctx, "")
	if err != nil || len(records) > 0 {
		return err
	}

	leave := models.GuardAvailability{
		ID: "a-rahim-leave", GuardID: "g-rahim", GuardName: "Rahim Uddin",
		Mode: models.AvailabilityModeDateRange, Type: models.AvailabilityTypeLeave,
		StartDate: "2026-02-10", EndDate: "2026-02-12",
		Note: "Family event", Source: models.AvailabilitySourceManual,
	}
	if err := s.availability.Create(ctx, &leave); err != nil {
		return err
	}
	s.logger.Info("seeded availability records", zap.Int("count", 1))
	return nil
}

func (s *Seeder) seedRosters(ctx context.Context) error {
	existing, err := s.rosters.List(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}

	roster := models.GuardRoster{
		ID:             "r-zone-a-feb",
		Title:          "Zone A February off days",
		ZoneName:       "Zone A",
		GuardIDs:       pq.StringArray{"g-rahim", "g-karim"},
		DayOffWeekdays: pq.Int64Array{0, 5},
		EffectiveFrom:  "2026-02-01",
		EffectiveTo:    "2026-02-28",
	}
	if err := s.rosters.Create(ctx, &roster); err != nil {
		return err
	}

	names := map[string]string{"g-rahim": "Rahim Uddin", "g-karim": "Karim Mia"}
	projected := service.ProjectRoster(&roster, names)
	if err := s.availability.ReplaceRosterDerived(ctx, roster.ID, projected); err != nil {
		return err
	}
	s.logger.Info("seeded roster", zap.String("id", roster.ID), zap.Int("projected", len(projected)))
	return nil
}

func (s *Seeder) seedPatrolHistory(ctx context.Context) error {
	existing, err := s.patrols.List(ctx, models.PatrolHistoryFilter{})
	if err != nil || len(existing) > 0 {
		return err
	}

	late8 := 8
	late25 := 25
	offRoster := models.AvailabilityTypeOffRoster

	records := []models.PatrolHistory{
		{Date: "2026-02-01", GuardID: "g-rahim", GuardName: "Rahim Uddin", ZoneName: "Zone A", CheckpointName: "Main Gate", Status: models.PatrolStatusSkipped, ScanMethod: models.ScanMethodQR, GraceTimeMinutes: 15, SkipReason: &offRoster},
		{Date: "2026-02-02", GuardID: "g-rahim", GuardName: "Rahim Uddin", ZoneName: "Zone A", CheckpointName: "Main Gate", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodQR, GraceTimeMinutes: 15},
		{Date: "2026-02-02", GuardID: "g-karim", GuardName: "Karim Mia", ZoneName: "Zone A", CheckpointName: "Lobby Desk", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodNFC, GraceTimeMinutes: 15},
		{Date: "2026-02-03", GuardID: "g-jalal", GuardName: "Jalal Khan", ZoneName: "Zone B", CheckpointName: "Loading Dock", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodNFC, GraceTimeMinutes: 20},
		{Date: "2026-02-03", GuardID: "g-rahim", GuardName: "Rahim Uddin", ZoneName: "Zone A", CheckpointName: "Main Gate", Status: models.PatrolStatusLate, ScanMethod: models.ScanMethodQR, GraceTimeMinutes: 15, LateByMinutes: &late8},
		{Date: "2026-02-04", GuardID: "g-karim", GuardName: "Karim Mia", ZoneName: "Zone A", CheckpointName: "Lobby Desk", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodQR, GraceTimeMinutes: 15},
		{Date: "2026-02-04", GuardID: "g-jalal", GuardName: "Jalal Khan", ZoneName: "Zone B", CheckpointName: "Loading Dock", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodNFC, GraceTimeMinutes: 20},
		{Date: "2026-02-05", GuardID: "g-jalal", GuardName: "Jalal Khan", ZoneName: "Zone B", CheckpointName: "Loading Dock", Status: models.PatrolStatusLate, ScanMethod: models.ScanMethodNFC, GraceTimeMinutes: 20, LateByMinutes: &late25},
		{Date: "2026-02-06", GuardID: "g-karim", GuardName: "Karim Mia", ZoneName: "Zone A", CheckpointName: "Lobby Desk", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodNFC, GraceTimeMinutes: 15},
		{Date: "2026-02-07", GuardID: "g-rahim", GuardName: "Rahim Uddin", ZoneName: "Zone A", CheckpointName: "Main Gate", Status: models.PatrolStatusCompleted, ScanMethod: models.ScanMethodQR, GraceTimeMinutes: 15},
		{Date: "2026-02-07", GuardID: "g-jalal", GuardName: "Jalal Khan", ZoneName: "Zone B", CheckpointName: "Loading Dock", Status: models.PatrolStatusMissed, ScanMethod: models.ScanMethodNFC, GraceTimeMinutes: 20},
	}
	if err := s.patrols.BulkCreate(ctx, records); err != nil {
		return err
	}
	s.logger.Info("seeded patrol history", zap.Int("count", len(records)))
	return nil
}
