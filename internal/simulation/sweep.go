package simulation

import (
	"context"
	"fmt"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ServiceLevelGrid returns points evenly spaced service levels from low to high, both included.
func ServiceLevelGrid(low, high float64, points int) ([]float64, error) {
	if err := validateServiceLevel(low); err != nil {
		return nil, fmt.Errorf("sweep low bound: %w", err)
	}
	if err := validateServiceLevel(high); err != nil {
		return nil, fmt.Errorf("sweep high bound: %w", err)
	}
	if low > high {
		return nil, fmt.Errorf("%w: sweep low bound %v exceeds high bound %v", domain.ErrInvalidParameter, low, high)
	}
	if points < 1 || points > domain.MaxSweepPoints {
		return nil, fmt.Errorf("%w: sweep points must lie in [1,%d], got %d", domain.ErrInvalidParameter, domain.MaxSweepPoints, points)
	}

	grid := make([]float64, points)
	if points == 1 {
		grid[0] = low
		return grid, nil
	}
	step := (high - low) / float64(points-1)
	for i := range grid {
		grid[i] = low + float64(i)*step
	}
	grid[points-1] = high
	return grid, nil
}

// Sweep recomputes the policy and reruns the engine for every service level in
// grid, with at most workers runs in flight. Points come back in grid order.
func Sweep(ctx context.Context, params domain.PolicyParameters, demand domain.DemandSeries, grid []float64, workers int) ([]domain.SweepPoint, error) {
	if workers < 1 {
		workers = 1
	}

	points := make([]domain.SweepPoint, len(grid))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, level := range grid {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := params
			p.TargetServiceLevel = level
			policy, err := BuildPolicy(p, demand)
			if err != nil {
				return fmt.Errorf("sweep at %.2f%%: %w", level, err)
			}
			res, err := Simulate(NewRunConfig(p, policy), demand, policy.ReorderPoint)
			if err != nil {
				return fmt.Errorf("sweep at %.2f%%: %w", level, err)
			}
			points[i] = domain.SweepPoint{
				TargetServiceLevel:   level,
				SafetyStock:          policy.SafetyStock,
				ReorderPoint:         policy.ReorderPoint,
				HoldingCost:          res.HoldingCost,
				OrderingCost:         res.OrderingCost,
				StockoutCost:         res.StockoutCost,
				TotalCost:            res.TotalCost,
				UnitsLost:            res.UnitsLost,
				RealizedServiceLevel: res.RealizedServiceLevel,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// CheapestPoint returns the sample with the lowest total cost; ties keep the lower service level.
func CheapestPoint(points []domain.SweepPoint) (domain.SweepPoint, bool) {
	if len(points) == 0 {
		return domain.SweepPoint{}, false
	}
	best := 0
	for i := 1; i < len(points); i++ {
		if points[i].TotalCost.LessThan(points[best].TotalCost) {
			best = i
		}
	}
	return points[best], true
}
