package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/guardwise/guardwise-api/internal/models"
	appErrors "github.com/guardwise/guardwise-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:stats"

type dashboardGuardRepository interface {
	List(ctx context.Context, filter models.GuardFilter) ([]models.Guard, error)
}

type dashboardZoneRepository interface {
	Count(ctx context.Context) (int, error)
}

type dashboardCheckpointRepository interface {
	List(ctx context.Context, zoneName, search string) ([]models.Checkpoint, error)
}

type dashboardScheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
}

type dashboardAvailabilityRepository interface {
	List(ctx context.Context, guardID string) ([]models.GuardAvailability, error)
}

type dashboardPatrolRepository interface {
	List(ctx context.Context, filter models.PatrolHistoryFilter) ([]models.PatrolHistory, error)
	CountMissedSince(ctx context.Context, date string) (int, error)
}

// DashboardService composes the operations dashboard payload, cached in
// redis for the configured TTL.
type DashboardService struct {
	guards       dashboardGuardRepository
	zones        dashboardZoneRepository
	checkpoints  dashboardCheckpointRepository
	schedules    dashboardScheduleRepository
	availability dashboardAvailabilityRepository
	patrols      dashboardPatrolRepository
	audit        *AuditService
	cache        *CacheService
	logger       *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(guards dashboardGuardRepository, zones dashboardZoneRepository, checkpoints dashboardCheckpointRepository, schedules dashboardScheduleRepository, availability dashboardAvailabilityRepository, patrols dashboardPatrolRepository, audit *AuditService, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		guards:       guards,
		zones:        zones,
		checkpoints:  checkpoints,
		schedules:    schedules,
		availability: availability,
		patrols:      patrols,
		audit:        audit,
		cache:        cache,
		logger:       logger,
	}
}

// Stats assembles the dashboard payload for the instant now, serving
// from cache when possible.
func (s *DashboardService) Stats(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if hit, _ := s.cache.Get(ctx, dashboardCacheKey, &cached); hit {
		return &cached, nil
	}

	stats, err := s.build(ctx, now)
	if err != nil {
		return nil, err
	}
	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, dashboardCacheKey, stats, 0)
	}
	return stats, nil
}

// Invalidate drops the cached dashboard payload. Mutating services call
// this after writes; the TTL covers everything else.
func (s *DashboardService) Invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, dashboardCacheKey)
}

func (s *DashboardService) build(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	today := now.UTC().Format(models.DateOnly)
	stats := &models.DashboardStats{}

	guards, err := s.guards.List(ctx, models.GuardFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load guards")
	}
	stats.TotalGuards = len(guards)
	mix := map[models.GuardStatus]int{}
	for _, guard := range guards {
		mix[guard.Status]++
		if guard.Status != models.GuardStatusInactive {
			stats.ActiveGuards++
		}
	}
	for _, status := range []models.GuardStatus{models.GuardStatusActive, models.GuardStatusOnDuty, models.GuardStatusInactive} {
		if mix[status] > 0 {
			stats.GuardMix = append(stats.GuardMix, models.GuardMixSlice{Name: string(status), Value: mix[status]})
		}
	}

	if stats.TotalZones, err = s.zones.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count zones")
	}

	checkpoints, err := s.checkpoints.List(ctx, "", "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load checkpoints")
	}
	stats.TotalCheckpoints = len(checkpoints)
	stats.DynamicQRCount = CountDynamicQR(checkpoints)
	stats.NFCConfiguredCount = CountNFCConfigured(checkpoints)

	schedules, err := s.schedules.List(ctx, models.ScheduleFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules")
	}
	stats.ScheduleRows = len(schedules)
	for _, schedule := range schedules {
		if schedule.Status == models.ScheduleStatusActive {
			stats.PlannedVisits += len(schedule.TimeSlots)
		}
	}
	stats.ZoneLoad = ZoneLoad(schedules)

	availability, err := s.availability.List(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	leaveToday := map[string]bool{}
	offRosterToday := map[string]bool{}
	for i := range availability {
		record := &availability[i]
		if !MatchesDate(record, today) {
			continue
		}
		if record.Type == models.AvailabilityTypeOffRoster {
			offRosterToday[record.GuardID] = true
		} else {
			leaveToday[record.GuardID] = true
		}
	}
	stats.LeaveTodayCount = len(leaveToday)
	stats.OffRosterTodayCount = len(offRosterToday)

	trendFrom := now.UTC().AddDate(0, 0, -6).Format(models.DateOnly)
	patrols, err := s.patrols.List(ctx, models.PatrolHistoryFilter{FromDate: trendFrom, ToDate: today})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load patrol history")
	}
	stats.PatrolTrend = Trend(patrols, trendFrom, today)
	stats.TrendSummary = Summarize(patrols)

	// All-time missed count, not just the trend window.
	if stats.MissedPatrols, err = s.patrols.CountMissedSince(ctx, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count missed patrols")
	}

	if s.audit != nil {
		if stats.AuditLast24h, err = s.audit.ActivitySince(ctx, now.UTC().Add(-24*time.Hour)); err != nil {
			return nil, err
		}
		if stats.AuditTotal, err = s.audit.Total(ctx); err != nil {
			return nil, err
		}
		recent, err := s.audit.List(ctx, "", 10)
		if err != nil {
			return nil, err
		}
		stats.RecentAudit = recent
	}

	return stats, nil
}
