package simulation

import (
	"context"
	"fmt"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Compare derives the differential metrics of candidate against baseline.
func Compare(baseline, candidate *domain.SimulationResult) domain.Comparison {
	return domain.Comparison{
		ServiceLevelDelta: candidate.RealizedServiceLevel - baseline.RealizedServiceLevel,
		SalesSaved:        baseline.UnitsLost - candidate.UnitsLost,
		CostSavings:       baseline.TotalCost.Sub(candidate.TotalCost),
		HoldingCostDelta:  candidate.HoldingCost.Sub(baseline.HoldingCost),
		OrderingCostDelta: candidate.OrderingCost.Sub(baseline.OrderingCost),
		StockoutCostDelta: candidate.StockoutCost.Sub(baseline.StockoutCost),
	}
}

// RunScenarios simulates every scenario against the same demand series in
// parallel. Outcomes keep the input order and are compared against scenarios[0].
func RunScenarios(ctx context.Context, cfg RunConfig, demand domain.DemandSeries, scenarios []domain.Scenario) ([]domain.ScenarioOutcome, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: at least one scenario is required", domain.ErrInvalidParameter)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*domain.SimulationResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Simulate(cfg, demand, sc.ReorderPoint)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcomes := make([]domain.ScenarioOutcome, len(scenarios))
	for i, sc := range scenarios {
		outcomes[i] = domain.ScenarioOutcome{
			Scenario:   sc,
			Result:     results[i],
			VsBaseline: Compare(results[0], results[i]),
		}
	}
	return outcomes, nil
}
