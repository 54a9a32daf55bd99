// internal/service/simulation_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/cache"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/config"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/simulation"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"
)

const (
	ScenarioUnprotected = "unprotected"
	ScenarioProtected   = "protected"
)

type SimulationService struct {
	defaults domain.ReportRequest
	workers  int
	cache    cache.ReportCache
	sem      *semaphore.Weighted
}

// prepared is the shared input of every run derived from one request.
type prepared struct {
	params domain.PolicyParameters
	demand domain.DemandSeries
	policy domain.Policy
	run    simulation.RunConfig
}

func NewSimulationService(cfg config.SimulationConfig, cacheImpl cache.ReportCache) (*SimulationService, error) {
	defaults, err := DefaultRequest(cfg)
	if err != nil {
		return nil, err
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	limit := int64(cfg.MaxConcurrentReports)
	if limit < 1 {
		limit = 1
	}

	return &SimulationService{
		defaults: defaults,
		workers:  workers,
		cache:    cacheImpl,
		sem:      semaphore.NewWeighted(limit),
	}, nil
}

// DefaultRequest turns the configured dashboard constants into a request.
func DefaultRequest(cfg config.SimulationConfig) (domain.ReportRequest, error) {
	ordering, err := decimal.NewFromString(cfg.OrderingCost)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("invalid ordering cost %q: %w", cfg.OrderingCost, err)
	}
	holding, err := decimal.NewFromString(cfg.AnnualHoldingCost)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("invalid annual holding cost %q: %w", cfg.AnnualHoldingCost, err)
	}
	stockout, err := decimal.NewFromString(cfg.StockoutCost)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("invalid stockout cost %q: %w", cfg.StockoutCost, err)
	}

	return domain.ReportRequest{
		TargetServiceLevel:  cfg.ServiceLevel,
		DemandMean:          cfg.DemandMean,
		DemandStdDev:        cfg.DemandStdDev,
		HorizonDays:         cfg.HorizonDays,
		Seed:                cfg.Seed,
		LeadTimeDays:        cfg.LeadTimeDays,
		OrderingCost:        ordering,
		AnnualHoldingCost:   holding,
		StockoutCostPerUnit: stockout,
		SweepLow:            cfg.SweepLow,
		SweepHigh:           cfg.SweepHigh,
		SweepPoints:         cfg.SweepPoints,
	}, nil
}

// Defaults returns a copy of the request used when a caller leaves fields unset.
func (s *SimulationService) Defaults() domain.ReportRequest {
	return s.defaults
}

// Report builds the full dashboard: A/B runs over one demand realization,
// their comparison and the service-level sweep.
func (s *SimulationService) Report(ctx context.Context, req domain.ReportRequest) (*domain.DashboardReport, error) {
	if report, ok, err := s.cache.GetReport(ctx, req); err == nil && ok {
		log.Debug().Float64("service_level", req.TargetServiceLevel).Msg("simulation: report cache hit")
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("simulation: cache get report failed")
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire simulation slot: %w", err)
	}
	defer s.sem.Release(1)

	start := time.Now()
	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	grid, err := simulation.ServiceLevelGrid(req.SweepLow, req.SweepHigh, req.SweepPoints)
	if err != nil {
		return nil, err
	}

	outcomes, err := simulation.RunScenarios(ctx, p.run, p.demand, defaultScenarios(p.policy))
	if err != nil {
		return nil, err
	}
	points, err := simulation.Sweep(ctx, p.params, p.demand, grid, s.workers)
	if err != nil {
		return nil, err
	}

	report := &domain.DashboardReport{
		Request:      req,
		Policy:       p.policy,
		Demand:       p.demand,
		Unprotected:  outcomes[0].Result,
		Protected:    outcomes[1].Result,
		Comparison:   outcomes[1].VsBaseline,
		Sweep:        points,
		CurrentLevel: req.TargetServiceLevel,
	}
	if best, ok := simulation.CheapestPoint(points); ok {
		report.Cheapest = &best
	}

	log.Info().
		Float64("service_level", req.TargetServiceLevel).
		Int("safety_stock", p.policy.SafetyStock).
		Float64("reorder_point", p.policy.ReorderPoint).
		Int("sales_saved", report.Comparison.SalesSaved).
		Str("cost_savings", report.Comparison.CostSavings.StringFixed(2)).
		Dur("latency", time.Since(start)).
		Msg("simulation: report computed")

	if err := s.cache.SetReport(ctx, req, report); err != nil {
		log.Warn().Err(err).Msg("simulation: cache set report failed")
	}

	return report, nil
}

// Simulate runs the engine once. A nil reorderPoint uses the safety-stock protected point.
func (s *SimulationService) Simulate(ctx context.Context, req domain.ReportRequest, reorderPoint *float64) (*domain.RunReport, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire simulation slot: %w", err)
	}
	defer s.sem.Release(1)

	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	rp := p.policy.ReorderPoint
	if reorderPoint != nil {
		rp = *reorderPoint
	}
	res, err := simulation.Simulate(p.run, p.demand, rp)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Float64("reorder_point", rp).
		Int("units_lost", res.UnitsLost).
		Str("total_cost", res.TotalCost.StringFixed(2)).
		Msg("simulation: single run")

	return &domain.RunReport{Policy: p.policy, Result: res}, nil
}

// Compare runs scenarios over the request's demand series. With no scenarios
// it compares the unprotected and protected reorder points.
func (s *SimulationService) Compare(ctx context.Context, req domain.ReportRequest, scenarios []domain.Scenario) ([]domain.ScenarioOutcome, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire simulation slot: %w", err)
	}
	defer s.sem.Release(1)

	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		scenarios = defaultScenarios(p.policy)
	}
	return simulation.RunScenarios(ctx, p.run, p.demand, scenarios)
}

// Sweep produces the service-level vs cost curve for the request.
func (s *SimulationService) Sweep(ctx context.Context, req domain.ReportRequest) (*domain.SweepReport, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire simulation slot: %w", err)
	}
	defer s.sem.Release(1)

	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	grid, err := simulation.ServiceLevelGrid(req.SweepLow, req.SweepHigh, req.SweepPoints)
	if err != nil {
		return nil, err
	}
	points, err := simulation.Sweep(ctx, p.params, p.demand, grid, s.workers)
	if err != nil {
		return nil, err
	}

	out := &domain.SweepReport{Points: points}
	if best, ok := simulation.CheapestPoint(points); ok {
		out.Cheapest = &best
	}
	return out, nil
}

// PurgeCache drops every cached report.
func (s *SimulationService) PurgeCache(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("purge report cache: %w", err)
	}
	log.Info().Msg("simulation: report cache purged")
	return nil
}

func (s *SimulationService) prepare(req domain.ReportRequest) (*prepared, error) {
	params := req.PolicyParameters()
	if err := simulation.ValidateParameters(params); err != nil {
		return nil, err
	}

	demand, err := simulation.GenerateDemand(simulation.DemandProfile{
		Mean:    req.DemandMean,
		StdDev:  req.DemandStdDev,
		Horizon: req.HorizonDays,
		Seed:    req.Seed,
	})
	if err != nil {
		return nil, err
	}

	policy, err := simulation.BuildPolicy(params, demand)
	if err != nil {
		return nil, err
	}

	return &prepared{
		params: params,
		demand: demand,
		policy: policy,
		run:    simulation.NewRunConfig(params, policy),
	}, nil
}

func defaultScenarios(policy domain.Policy) []domain.Scenario {
	return []domain.Scenario{
		{Name: ScenarioUnprotected, ReorderPoint: policy.DeterministicReorderPoint},
		{Name: ScenarioProtected, ReorderPoint: policy.ReorderPoint},
	}
}
