package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/cache"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/config"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func newService(cfg *config.Config, sim config.SimulationConfig) (*service.SimulationService, error) {
	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("report cache unavailable, continuing without it")
		reportCache = cache.NewNoopReportCache()
	}
	return service.NewSimulationService(sim, reportCache)
}

// requestFromFlags overlays the command flags on the configured simulation defaults.
func requestFromFlags(c *cli.Context, base config.SimulationConfig) (config.SimulationConfig, domain.ReportRequest, error) {
	sim := base
	sim.ServiceLevel = c.Float64("service-level")
	sim.DemandMean = c.Float64("mean")
	sim.DemandStdDev = c.Float64("stddev")
	sim.LeadTimeDays = c.Int("lead-time")
	sim.HorizonDays = c.Int("horizon")
	sim.Seed = c.Uint64("seed")
	sim.OrderingCost = c.String("ordering-cost")
	sim.AnnualHoldingCost = c.String("holding-cost")
	sim.StockoutCost = c.String("stockout-cost")
	if c.Command.Name == "report" || c.Command.Name == "sweep" {
		sim.SweepLow = c.Float64("sweep-low")
		sim.SweepHigh = c.Float64("sweep-high")
		sim.SweepPoints = c.Int("sweep-points")
	}

	req, err := service.DefaultRequest(sim)
	if err != nil {
		return sim, domain.ReportRequest{}, err
	}
	req.OrderQuantity = c.Int("order-quantity")
	return sim, req, nil
}

func runReport(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		sim, req, err := requestFromFlags(c, cfg.Simulation)
		if err != nil {
			return err
		}
		svc, err := newService(cfg, sim)
		if err != nil {
			return err
		}

		report, err := svc.Report(c.Context, req)
		if err != nil {
			return fmt.Errorf("report failed: %w", err)
		}
		if wantJSON(c) {
			return writeJSON(c.App.Writer, report)
		}

		w := c.App.Writer
		fmt.Fprintf(w, "horizon: %d days, total demand: %d units\n\n", report.Demand.Len(), report.Demand.Total())
		writePolicy(w, report.Policy)
		fmt.Fprintln(w)
		writeOutcomes(w, []domain.ScenarioOutcome{
			{Scenario: domain.Scenario{Name: service.ScenarioUnprotected, ReorderPoint: report.Unprotected.ReorderPoint}, Result: report.Unprotected},
			{Scenario: domain.Scenario{Name: service.ScenarioProtected, ReorderPoint: report.Protected.ReorderPoint}, Result: report.Protected, VsBaseline: report.Comparison},
		})
		fmt.Fprintf(w, "\nsales saved: %d units, cost savings: %s\n\n",
			report.Comparison.SalesSaved, report.Comparison.CostSavings.StringFixed(2))
		writeSweep(w, report.Sweep, report.Cheapest)
		return nil
	}
}

func runSimulate(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		sim, req, err := requestFromFlags(c, cfg.Simulation)
		if err != nil {
			return err
		}
		svc, err := newService(cfg, sim)
		if err != nil {
			return err
		}

		var rp *float64
		if c.IsSet("reorder-point") {
			v := c.Float64("reorder-point")
			rp = &v
		}
		run, err := svc.Simulate(c.Context, req, rp)
		if err != nil {
			return fmt.Errorf("simulate failed: %w", err)
		}
		if wantJSON(c) {
			return writeJSON(c.App.Writer, run)
		}

		writePolicy(c.App.Writer, run.Policy)
		fmt.Fprintln(c.App.Writer)
		writeOutcomes(c.App.Writer, []domain.ScenarioOutcome{
			{Scenario: domain.Scenario{Name: "run", ReorderPoint: run.Result.ReorderPoint}, Result: run.Result},
		})
		return nil
	}
}

func runCompare(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		sim, req, err := requestFromFlags(c, cfg.Simulation)
		if err != nil {
			return err
		}
		scenarios, err := parseScenarios(c.StringSlice("scenario"))
		if err != nil {
			return err
		}
		svc, err := newService(cfg, sim)
		if err != nil {
			return err
		}

		outcomes, err := svc.Compare(c.Context, req, scenarios)
		if err != nil {
			return fmt.Errorf("compare failed: %w", err)
		}
		if wantJSON(c) {
			return writeJSON(c.App.Writer, outcomes)
		}
		writeOutcomes(c.App.Writer, outcomes)
		return nil
	}
}

func runSweep(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		sim, req, err := requestFromFlags(c, cfg.Simulation)
		if err != nil {
			return err
		}
		svc, err := newService(cfg, sim)
		if err != nil {
			return err
		}

		out, err := svc.Sweep(c.Context, req)
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}
		if wantJSON(c) {
			return writeJSON(c.App.Writer, out)
		}
		writeSweep(c.App.Writer, out.Points, out.Cheapest)
		return nil
	}
}

// parseScenarios reads "name=reorder_point" pairs. A bare number is named after its position.
func parseScenarios(raw []string) ([]domain.Scenario, error) {
	scenarios := make([]domain.Scenario, 0, len(raw))
	for i, item := range raw {
		name, value, found := strings.Cut(strings.TrimSpace(item), "=")
		if !found {
			name, value = fmt.Sprintf("scenario-%d", i+1), name
		}
		rp, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario %q: %w", item, err)
		}
		scenarios = append(scenarios, domain.Scenario{Name: strings.TrimSpace(name), ReorderPoint: rp})
	}
	return scenarios, nil
}

func wantJSON(c *cli.Context) bool {
	return strings.EqualFold(c.String("format"), "json")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePolicy(w io.Writer, p domain.Policy) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "order quantity\t%d\n", p.OrderQuantity)
	fmt.Fprintf(tw, "z-score\t%.4f\n", p.ZScore)
	fmt.Fprintf(tw, "safety stock\t%d\n", p.SafetyStock)
	fmt.Fprintf(tw, "reorder point (naive)\t%.2f\n", p.DeterministicReorderPoint)
	fmt.Fprintf(tw, "reorder point (protected)\t%.2f\n", p.ReorderPoint)
	tw.Flush()
}

func writeOutcomes(w io.Writer, outcomes []domain.ScenarioOutcome) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tROP\tORDERS\tLOST\tSTOCKOUT DAYS\tSERVICE LVL\tHOLDING\tORDERING\tSTOCKOUT\tTOTAL\tSAVINGS")
	for _, o := range outcomes {
		r := o.Result
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%d\t%.2f\t%s\t%s\t%s\t%s\t%s\n",
			o.Scenario.Name, r.ReorderPoint, len(r.Orders), r.UnitsLost, r.StockoutDays, r.RealizedServiceLevel,
			r.HoldingCost.StringFixed(2), r.OrderingCost.StringFixed(2), r.StockoutCost.StringFixed(2),
			r.TotalCost.StringFixed(2), o.VsBaseline.CostSavings.StringFixed(2))
	}
	tw.Flush()
}

func writeSweep(w io.Writer, points []domain.SweepPoint, cheapest *domain.SweepPoint) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET LVL\tSAFETY STOCK\tROP\tLOST\tREALIZED LVL\tHOLDING\tSTOCKOUT\tTOTAL")
	for _, p := range points {
		fmt.Fprintf(tw, "%.2f\t%d\t%.2f\t%d\t%.2f\t%s\t%s\t%s\n",
			p.TargetServiceLevel, p.SafetyStock, p.ReorderPoint, p.UnitsLost, p.RealizedServiceLevel,
			p.HoldingCost.StringFixed(2), p.StockoutCost.StringFixed(2), p.TotalCost.StringFixed(2))
	}
	tw.Flush()
	if cheapest != nil {
		fmt.Fprintf(w, "\ncheapest: %.2f%% at %s\n", cheapest.TargetServiceLevel, cheapest.TotalCost.StringFixed(2))
	}
}
