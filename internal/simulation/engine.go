package simulation

import (
	"fmt"
	"math"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/shopspring/decimal"
)

// RunConfig holds the per-run constants of the inventory state machine.
type RunConfig struct {
	LeadTimeDays        int
	OrderQuantity       int
	InitialOnHand       int
	OrderingCost        decimal.Decimal
	DailyHoldingCost    decimal.Decimal
	StockoutCostPerUnit decimal.Decimal
}

// NewRunConfig builds the run constants for a policy. The run starts freshly
// restocked with one order quantity on hand.
func NewRunConfig(params domain.PolicyParameters, policy domain.Policy) RunConfig {
	return RunConfig{
		LeadTimeDays:        params.LeadTimeDays,
		OrderQuantity:       policy.OrderQuantity,
		InitialOnHand:       policy.OrderQuantity,
		OrderingCost:        params.OrderingCost,
		DailyHoldingCost:    params.DailyHoldingCost(),
		StockoutCostPerUnit: params.StockoutCostPerUnit,
	}
}

// Validate rejects configurations the state machine cannot run.
func (c RunConfig) Validate() error {
	if c.LeadTimeDays < 1 {
		return fmt.Errorf("%w: lead time must be at least 1 day, got %d", domain.ErrInvalidParameter, c.LeadTimeDays)
	}
	if c.OrderQuantity <= 0 {
		return fmt.Errorf("%w: order quantity must be positive, got %d", domain.ErrInvalidParameter, c.OrderQuantity)
	}
	if c.InitialOnHand < 0 {
		return fmt.Errorf("%w: initial on-hand cannot be negative, got %d", domain.ErrInvalidParameter, c.InitialOnHand)
	}
	if c.OrderingCost.IsNegative() || c.DailyHoldingCost.IsNegative() || c.StockoutCostPerUnit.IsNegative() {
		return fmt.Errorf("%w: cost rates cannot be negative", domain.ErrInvalidParameter)
	}
	return nil
}

// Simulate runs the day-by-day inventory state machine over demand with the
// given reorder point. Each day applies, in order: arrival of the pending
// order, consumption with lost sales, trajectory record and the reorder check.
// At most one order is outstanding; the check is skipped while one is in flight.
func Simulate(cfg RunConfig, demand domain.DemandSeries, reorderPoint float64) (*domain.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if demand.Len() == 0 {
		return nil, fmt.Errorf("%w: demand series is empty", domain.ErrInvalidParameter)
	}
	if math.IsNaN(reorderPoint) {
		return nil, fmt.Errorf("%w: reorder point is NaN", domain.ErrInvalidParameter)
	}

	var (
		onHand       = cfg.InitialOnHand
		pending      *domain.InFlightOrder
		trajectory   = make([]int, demand.Len())
		orders       []domain.InFlightOrder
		unitsLost    int
		stockoutDays int
		onHandSum    int64
	)

	for t, d := range demand {
		if pending != nil && pending.ArrivalDay == t {
			onHand += pending.Quantity
			pending = nil
		}

		if onHand >= d {
			onHand -= d
		} else {
			unitsLost += d - onHand
			stockoutDays++
			onHand = 0
		}

		trajectory[t] = onHand
		onHandSum += int64(onHand)

		// with nothing in flight the inventory position is the on-hand level
		if pending == nil && float64(onHand) <= reorderPoint {
			pending = &domain.InFlightOrder{
				Quantity:   cfg.OrderQuantity,
				PlacedDay:  t,
				ArrivalDay: t + cfg.LeadTimeDays,
			}
			orders = append(orders, *pending)
		}
	}

	totalDemand := demand.Total()
	holding := decimal.NewFromInt(onHandSum).Mul(cfg.DailyHoldingCost)
	ordering := cfg.OrderingCost.Mul(decimal.NewFromInt(int64(len(orders))))
	stockout := cfg.StockoutCostPerUnit.Mul(decimal.NewFromInt(int64(unitsLost)))

	return &domain.SimulationResult{
		ReorderPoint:         reorderPoint,
		Trajectory:           trajectory,
		HoldingCost:          holding,
		OrderingCost:         ordering,
		StockoutCost:         stockout,
		TotalCost:            holding.Add(ordering).Add(stockout),
		UnitsLost:            unitsLost,
		TotalDemand:          totalDemand,
		RealizedServiceLevel: realizedServiceLevel(unitsLost, totalDemand),
		Orders:               orders,
		StockoutDays:         stockoutDays,
		AverageOnHand:        float64(onHandSum) / float64(demand.Len()),
	}, nil
}

// realizedServiceLevel is the percentage of demand served from stock; with no
// demand there is nothing to lose and the level is 100.
func realizedServiceLevel(unitsLost, totalDemand int) float64 {
	if totalDemand <= 0 {
		return 100
	}
	return 100 * (1 - float64(unitsLost)/float64(totalDemand))
}
