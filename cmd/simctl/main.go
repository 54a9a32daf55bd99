package main

import (
	"os"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/config"
	"github.com/Guilhermestudar/dashboard-logistica-unb/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := newApp(cfg).Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("simctl failed")
	}
}

func newApp(cfg *config.Config) *cli.App {
	sim := cfg.Simulation

	return &cli.App{
		Name:  "simctl",
		Usage: "Run the safety-stock inventory simulation from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: table or json",
				Value: "table",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "report",
				Usage:  "A/B comparison plus the service-level sweep",
				Flags:  append(requestFlags(sim), sweepFlags(sim)...),
				Action: runReport(cfg),
			},
			{
				Name:  "simulate",
				Usage: "Run a single simulation",
				Flags: append(requestFlags(sim),
					&cli.Float64Flag{
						Name:  "reorder-point",
						Usage: "Reorder point to simulate (defaults to the safety-stock protected point)",
					},
				),
				Action: runSimulate(cfg),
			},
			{
				Name:  "compare",
				Usage: "Compare reorder points over the same demand series",
				Flags: append(requestFlags(sim),
					&cli.StringSliceFlag{
						Name:    "scenario",
						Aliases: []string{"s"},
						Usage:   "Scenario as name=reorder_point, repeatable; the first is the baseline",
					},
				),
				Action: runCompare(cfg),
			},
			{
				Name:   "sweep",
				Usage:  "Total cost and lost units across target service levels",
				Flags:  append(requestFlags(sim), sweepFlags(sim)...),
				Action: runSweep(cfg),
			},
		},
	}
}

func requestFlags(sim config.SimulationConfig) []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "service-level", Usage: "Target service level in percent", Value: sim.ServiceLevel},
		&cli.Float64Flag{Name: "mean", Usage: "Mean daily demand", Value: sim.DemandMean},
		&cli.Float64Flag{Name: "stddev", Usage: "Daily demand standard deviation", Value: sim.DemandStdDev},
		&cli.IntFlag{Name: "lead-time", Usage: "Lead time in days", Value: sim.LeadTimeDays},
		&cli.IntFlag{Name: "horizon", Usage: "Simulated days", Value: sim.HorizonDays},
		&cli.Uint64Flag{Name: "seed", Usage: "Demand generator seed", Value: sim.Seed},
		&cli.StringFlag{Name: "ordering-cost", Usage: "Cost per order placed", Value: sim.OrderingCost},
		&cli.StringFlag{Name: "holding-cost", Usage: "Annual holding cost per unit", Value: sim.AnnualHoldingCost},
		&cli.StringFlag{Name: "stockout-cost", Usage: "Cost per unit of lost sales", Value: sim.StockoutCost},
		&cli.IntFlag{Name: "order-quantity", Usage: "Fixed order quantity, 0 uses the EOQ"},
	}
}

func sweepFlags(sim config.SimulationConfig) []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "sweep-low", Usage: "Lowest service level of the sweep", Value: sim.SweepLow},
		&cli.Float64Flag{Name: "sweep-high", Usage: "Highest service level of the sweep", Value: sim.SweepHigh},
		&cli.IntFlag{Name: "sweep-points", Usage: "Number of sweep samples", Value: sim.SweepPoints},
	}
}
