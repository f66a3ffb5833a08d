package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campus-kit/registrar-service/internal/persistence"
	"github.com/campus-kit/registrar-service/internal/repository"
)

// ReportService produces weekly and monthly registrar ticket reports over a
// receipt-date range, caching rendered reports in Redis for a short TTL.
type ReportService struct {
	tickets repository.TicketRepository
	cache   *persistence.Redis
	ttl     time.Duration
	logger  *zap.Logger
}

// NewReportService constructs the service. A nil or unreachable cache only
// disables caching; reports are still served from the store.
func NewReportService(tickets repository.TicketRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{tickets: tickets, cache: cache, ttl: ttl, logger: logger}
}

// Weekly returns Monday-aligned weekly buckets for tickets received in
// [from, to].
func (s *ReportService) Weekly(ctx context.Context, from, to *time.Time) ([]WeeklyBucket, error) {
	key := cacheKey("weekly", from, to)
	var cached []WeeklyBucket
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	tickets, err := s.tickets.List(ctx, repository.TicketFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	buckets := AggregateWeekly(tickets)
	s.writeCache(ctx, key, buckets)
	return buckets, nil
}

// Monthly returns calendar-month buckets for tickets received in [from, to].
func (s *ReportService) Monthly(ctx context.Context, from, to *time.Time) ([]MonthlyBucket, error) {
	key := cacheKey("monthly", from, to)
	var cached []MonthlyBucket
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	tickets, err := s.tickets.List(ctx, repository.TicketFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	buckets := AggregateMonthly(tickets)
	s.writeCache(ctx, key, buckets)
	return buckets, nil
}

func (s *ReportService) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("discarding malformed cached report", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *ReportService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(period string, from, to *time.Time) string {
	f, t := "-", "-"
	if from != nil {
		f = from.UTC().Format(time.RFC3339)
	}
	if to != nil {
		t = to.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("reports:%s:%s:%s", period, f, t)
}
