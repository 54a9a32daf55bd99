// internal/domain/simulation.go
package domain

import "github.com/shopspring/decimal"

// DaysPerYear converts the annual holding cost into a daily rate.
const DaysPerYear = 365

// Upper bounds on caller-supplied inputs. They keep a run's memory bounded and
// every demand and inventory sum well inside int range.
const (
	MaxHorizonDays   = 100 * DaysPerYear
	MaxLeadTimeDays  = MaxHorizonDays
	MaxDemandMean    = 1e6
	MaxDemandStdDev  = 1e6
	MaxOrderQuantity = 1_000_000_000
	MaxSweepPoints   = 1000
)

// DemandSeries is one realization of daily demand. Values are never negative.
type DemandSeries []int

// Total returns the summed demand over the whole horizon.
func (d DemandSeries) Total() int {
	total := 0
	for _, v := range d {
		total += v
	}
	return total
}

// Len returns the horizon length in days.
func (d DemandSeries) Len() int {
	return len(d)
}

// PolicyParameters holds the inputs that drive both reorder points of a run.
type PolicyParameters struct {
	TargetServiceLevel  float64         `json:"target_service_level"` // percent, (0,100)
	DemandMean          float64         `json:"demand_mean"`
	DemandStdDev        float64         `json:"demand_std_dev"`
	LeadTimeDays        int             `json:"lead_time_days"`
	OrderingCost        decimal.Decimal `json:"ordering_cost"`
	AnnualHoldingCost   decimal.Decimal `json:"annual_holding_cost"`
	StockoutCostPerUnit decimal.Decimal `json:"stockout_cost_per_unit"`
	OrderQuantity       int             `json:"order_quantity"` // 0 derives the EOQ from demand
}

// DailyHoldingCost returns the per-unit, per-day holding rate.
func (p PolicyParameters) DailyHoldingCost() decimal.Decimal {
	return p.AnnualHoldingCost.Div(decimal.NewFromInt(DaysPerYear))
}

// Policy is the set of quantities derived from PolicyParameters and a demand series.
type Policy struct {
	OrderQuantity             int     `json:"order_quantity"`
	DeterministicReorderPoint float64 `json:"deterministic_reorder_point"`
	ZScore                    float64 `json:"z_score"`
	SafetyStock               int     `json:"safety_stock"`
	ReorderPoint              float64 `json:"reorder_point"`
}

// InFlightOrder is a purchase order placed but not yet received.
type InFlightOrder struct {
	Quantity   int `json:"quantity"`
	PlacedDay  int `json:"placed_day"`
	ArrivalDay int `json:"arrival_day"`
}

// SimulationResult is the read-only outcome of one engine run.
type SimulationResult struct {
	ReorderPoint         float64         `json:"reorder_point"`
	Trajectory           []int           `json:"trajectory"`
	HoldingCost          decimal.Decimal `json:"holding_cost"`
	OrderingCost         decimal.Decimal `json:"ordering_cost"`
	StockoutCost         decimal.Decimal `json:"stockout_cost"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	UnitsLost            int             `json:"units_lost"`
	TotalDemand          int             `json:"total_demand"`
	RealizedServiceLevel float64         `json:"realized_service_level"`
	Orders               []InFlightOrder `json:"orders"`
	StockoutDays         int             `json:"stockout_days"`
	AverageOnHand        float64         `json:"average_on_hand"`
}

// Comparison holds the differential metrics between a baseline run and a candidate run.
type Comparison struct {
	ServiceLevelDelta float64         `json:"service_level_delta"` // candidate - baseline
	SalesSaved        int             `json:"sales_saved"`         // baseline lost - candidate lost
	CostSavings       decimal.Decimal `json:"cost_savings"`        // baseline total - candidate total
	HoldingCostDelta  decimal.Decimal `json:"holding_cost_delta"`
	OrderingCostDelta decimal.Decimal `json:"ordering_cost_delta"`
	StockoutCostDelta decimal.Decimal `json:"stockout_cost_delta"`
}

// Scenario names one reorder-point configuration to run against a shared demand series.
type Scenario struct {
	Name         string  `json:"name"`
	ReorderPoint float64 `json:"reorder_point"`
}

// ScenarioOutcome pairs a scenario with its run and its comparison against the first scenario.
type ScenarioOutcome struct {
	Scenario   Scenario          `json:"scenario"`
	Result     *SimulationResult `json:"result"`
	VsBaseline Comparison        `json:"vs_baseline"`
}

// SweepPoint is one sample of the service-level vs cost curve.
type SweepPoint struct {
	TargetServiceLevel   float64         `json:"target_service_level"`
	SafetyStock          int             `json:"safety_stock"`
	ReorderPoint         float64         `json:"reorder_point"`
	HoldingCost          decimal.Decimal `json:"holding_cost"`
	OrderingCost         decimal.Decimal `json:"ordering_cost"`
	StockoutCost         decimal.Decimal `json:"stockout_cost"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	UnitsLost            int             `json:"units_lost"`
	RealizedServiceLevel float64         `json:"realized_service_level"`
}
