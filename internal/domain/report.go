package domain

import "github.com/shopspring/decimal"

// ReportRequest carries everything the presentation layer supplies for a dashboard report.
type ReportRequest struct {
	TargetServiceLevel  float64         `json:"target_service_level"`
	DemandMean          float64         `json:"demand_mean"`
	DemandStdDev        float64         `json:"demand_std_dev"`
	HorizonDays         int             `json:"horizon_days"`
	Seed                uint64          `json:"seed"`
	LeadTimeDays        int             `json:"lead_time_days"`
	OrderingCost        decimal.Decimal `json:"ordering_cost"`
	AnnualHoldingCost   decimal.Decimal `json:"annual_holding_cost"`
	StockoutCostPerUnit decimal.Decimal `json:"stockout_cost_per_unit"`
	OrderQuantity       int             `json:"order_quantity"`
	SweepLow            float64         `json:"sweep_low"`
	SweepHigh           float64         `json:"sweep_high"`
	SweepPoints         int             `json:"sweep_points"`
}

// PolicyParameters projects the request onto the engine's policy inputs.
func (r ReportRequest) PolicyParameters() PolicyParameters {
	return PolicyParameters{
		TargetServiceLevel:  r.TargetServiceLevel,
		DemandMean:          r.DemandMean,
		DemandStdDev:        r.DemandStdDev,
		LeadTimeDays:        r.LeadTimeDays,
		OrderingCost:        r.OrderingCost,
		AnnualHoldingCost:   r.AnnualHoldingCost,
		StockoutCostPerUnit: r.StockoutCostPerUnit,
		OrderQuantity:       r.OrderQuantity,
	}
}

// DashboardReport is the full A/B comparison plus the trade-off curve.
type DashboardReport struct {
	Request      ReportRequest     `json:"request"`
	Policy       Policy            `json:"policy"`
	Demand       DemandSeries      `json:"demand"`
	Unprotected  *SimulationResult `json:"unprotected"`
	Protected    *SimulationResult `json:"protected"`
	Comparison   Comparison        `json:"comparison"`
	Sweep        []SweepPoint      `json:"sweep"`
	Cheapest     *SweepPoint       `json:"cheapest,omitempty"`
	CurrentLevel float64           `json:"current_level"`
}

// Range is a closed numeric interval with a step, as offered by an input control.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// InputLimits lists the ranges the dashboard controls expose.
type InputLimits struct {
	ServiceLevel Range `json:"service_level"`
	DemandStdDev Range `json:"demand_std_dev"`
	LeadTimeDays Range `json:"lead_time_days"`
}

// DashboardInputLimits are the ranges offered by the dashboard sliders.
var DashboardInputLimits = InputLimits{
	ServiceLevel: Range{Min: 50.0, Max: 99.9, Step: 0.1},
	DemandStdDev: Range{Min: 5, Max: 30, Step: 1},
	LeadTimeDays: Range{Min: 1, Max: 15, Step: 1},
}

// RunReport is a single engine run together with the policy it was derived from.
type RunReport struct {
	Policy Policy            `json:"policy"`
	Result *SimulationResult `json:"result"`
}

// SweepReport is the service-level vs cost curve and its cheapest sample.
type SweepReport struct {
	Points   []SweepPoint `json:"points"`
	Cheapest *SweepPoint  `json:"cheapest,omitempty"`
}
