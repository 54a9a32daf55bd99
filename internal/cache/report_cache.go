package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/config"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "simulation:report"

// ReportCache stores dashboard reports keyed by the request that produced them.
// Reports are deterministic in their request, so entries never go stale; the
// TTL only bounds memory.
type ReportCache interface {
	GetReport(ctx context.Context, req domain.ReportRequest) (*domain.DashboardReport, bool, error)
	SetReport(ctx context.Context, req domain.ReportRequest, report *domain.DashboardReport) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    reportTTL(cfg),
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, req domain.ReportRequest) (*domain.DashboardReport, bool, error) {
	payload, err := c.client.Get(ctx, ReportKey(req)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.DashboardReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}
	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, req domain.ReportRequest, report *domain.DashboardReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}
	if err := c.client.Set(ctx, ReportKey(req), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return purgePrefix(ctx, c.client, reportKeyPrefix)
}

func (n *noopReportCache) GetReport(ctx context.Context, req domain.ReportRequest) (*domain.DashboardReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, req domain.ReportRequest, report *domain.DashboardReport) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// ReportKey hashes every input that influences a report. Money values are
// normalized so "200" and "200.00" share an entry.
func ReportKey(req domain.ReportRequest) string {
	parts := []string{
		"sl=" + formatFloat(req.TargetServiceLevel),
		"mean=" + formatFloat(req.DemandMean),
		"std=" + formatFloat(req.DemandStdDev),
		"horizon=" + strconv.Itoa(req.HorizonDays),
		"seed=" + strconv.FormatUint(req.Seed, 10),
		"lead=" + strconv.Itoa(req.LeadTimeDays),
		"s=" + req.OrderingCost.String(),
		"h=" + req.AnnualHoldingCost.String(),
		"cf=" + req.StockoutCostPerUnit.String(),
		"q=" + strconv.Itoa(req.OrderQuantity),
		"sweep=" + formatFloat(req.SweepLow) + ":" + formatFloat(req.SweepHigh) + ":" + strconv.Itoa(req.SweepPoints),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(sum[:]))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
