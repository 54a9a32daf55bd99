package simulation

import (
	"fmt"
	"math"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

var two = decimal.NewFromInt(2)

// EconomicOrderQuantity returns round(sqrt(2 * D * S / H)) where D is the total
// demand over the horizon, S the cost per order and H the annual holding cost per unit.
func EconomicOrderQuantity(totalDemand int, orderingCost, annualHoldingCost decimal.Decimal) (int, error) {
	if !annualHoldingCost.IsPositive() {
		return 0, fmt.Errorf("%w: annual holding cost must be positive, got %s", domain.ErrInvalidParameter, annualHoldingCost)
	}
	if orderingCost.IsNegative() {
		return 0, fmt.Errorf("%w: ordering cost cannot be negative, got %s", domain.ErrInvalidParameter, orderingCost)
	}
	if totalDemand < 0 {
		return 0, fmt.Errorf("%w: total demand cannot be negative, got %d", domain.ErrInvalidParameter, totalDemand)
	}

	ratio := two.Mul(decimal.NewFromInt(int64(totalDemand))).Mul(orderingCost).Div(annualHoldingCost)
	return int(math.RoundToEven(math.Sqrt(ratio.InexactFloat64()))), nil
}

// DeterministicReorderPoint is the expected demand during the lead time.
func DeterministicReorderPoint(demandMean float64, leadTimeDays int) float64 {
	return demandMean * float64(leadTimeDays)
}

// ZScore returns the standard normal quantile for a service level given in percent.
func ZScore(targetServiceLevel float64) (float64, error) {
	if err := validateServiceLevel(targetServiceLevel); err != nil {
		return 0, err
	}
	return distuv.UnitNormal.Quantile(targetServiceLevel / 100), nil
}

// SafetyStock returns round(z * stdDev * sqrt(leadTime)). Below a 50% target the
// z-score is negative and so is the result; it is intentionally left unclamped.
func SafetyStock(targetServiceLevel, demandStdDev float64, leadTimeDays int) (int, error) {
	z, err := ZScore(targetServiceLevel)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(demandStdDev) || demandStdDev < 0 || demandStdDev > domain.MaxDemandStdDev {
		return 0, fmt.Errorf("%w: demand std dev must lie in [0,%g], got %v", domain.ErrInvalidParameter, domain.MaxDemandStdDev, demandStdDev)
	}
	if leadTimeDays < 1 || leadTimeDays > domain.MaxLeadTimeDays {
		return 0, fmt.Errorf("%w: lead time must lie in [1,%d] days, got %d", domain.ErrInvalidParameter, domain.MaxLeadTimeDays, leadTimeDays)
	}
	return safetyStock(z, demandStdDev, leadTimeDays), nil
}

func safetyStock(z, demandStdDev float64, leadTimeDays int) int {
	return int(math.RoundToEven(z * demandStdDev * math.Sqrt(float64(leadTimeDays))))
}

// StochasticReorderPoint adds the safety stock on top of the expected lead-time demand.
func StochasticReorderPoint(demandMean float64, leadTimeDays, safetyStock int) float64 {
	return DeterministicReorderPoint(demandMean, leadTimeDays) + float64(safetyStock)
}

// BuildPolicy validates params and derives the order quantity and both reorder
// points. The order quantity comes from the EOQ over the series total unless
// params.OrderQuantity is set; an EOQ of zero is raised to one unit.
func BuildPolicy(params domain.PolicyParameters, demand domain.DemandSeries) (domain.Policy, error) {
	if err := ValidateParameters(params); err != nil {
		return domain.Policy{}, err
	}

	qty := params.OrderQuantity
	if qty == 0 {
		eoq, err := EconomicOrderQuantity(demand.Total(), params.OrderingCost, params.AnnualHoldingCost)
		if err != nil {
			return domain.Policy{}, err
		}
		qty = max(eoq, 1)
	}

	z, err := ZScore(params.TargetServiceLevel)
	if err != nil {
		return domain.Policy{}, err
	}
	ss := safetyStock(z, params.DemandStdDev, params.LeadTimeDays)

	return domain.Policy{
		OrderQuantity:             qty,
		DeterministicReorderPoint: DeterministicReorderPoint(params.DemandMean, params.LeadTimeDays),
		ZScore:                    z,
		SafetyStock:               ss,
		ReorderPoint:              StochasticReorderPoint(params.DemandMean, params.LeadTimeDays, ss),
	}, nil
}

// ValidateParameters rejects parameter sets that cannot drive a run.
func ValidateParameters(p domain.PolicyParameters) error {
	if err := validateServiceLevel(p.TargetServiceLevel); err != nil {
		return err
	}
	if math.IsNaN(p.DemandMean) || p.DemandMean < 0 || p.DemandMean > domain.MaxDemandMean {
		return fmt.Errorf("%w: demand mean must lie in [0,%g], got %v", domain.ErrInvalidParameter, domain.MaxDemandMean, p.DemandMean)
	}
	if math.IsNaN(p.DemandStdDev) || p.DemandStdDev < 0 || p.DemandStdDev > domain.MaxDemandStdDev {
		return fmt.Errorf("%w: demand std dev must lie in [0,%g], got %v", domain.ErrInvalidParameter, domain.MaxDemandStdDev, p.DemandStdDev)
	}
	if p.LeadTimeDays < 1 || p.LeadTimeDays > domain.MaxLeadTimeDays {
		return fmt.Errorf("%w: lead time must lie in [1,%d] days, got %d", domain.ErrInvalidParameter, domain.MaxLeadTimeDays, p.LeadTimeDays)
	}
	if !p.AnnualHoldingCost.IsPositive() {
		return fmt.Errorf("%w: annual holding cost must be positive, got %s", domain.ErrInvalidParameter, p.AnnualHoldingCost)
	}
	if p.OrderingCost.IsNegative() {
		return fmt.Errorf("%w: ordering cost cannot be negative, got %s", domain.ErrInvalidParameter, p.OrderingCost)
	}
	if p.StockoutCostPerUnit.IsNegative() {
		return fmt.Errorf("%w: stockout cost cannot be negative, got %s", domain.ErrInvalidParameter, p.StockoutCostPerUnit)
	}
	if p.OrderQuantity < 0 || p.OrderQuantity > domain.MaxOrderQuantity {
		return fmt.Errorf("%w: order quantity must lie in [0,%d], got %d", domain.ErrInvalidParameter, domain.MaxOrderQuantity, p.OrderQuantity)
	}
	return nil
}

func validateServiceLevel(sl float64) error {
	if math.IsNaN(sl) || sl <= 0 || sl >= 100 {
		return fmt.Errorf("%w: target service level must lie in (0,100), got %v", domain.ErrInvalidParameter, sl)
	}
	return nil
}
