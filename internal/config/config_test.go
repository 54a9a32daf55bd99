package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	sim := cfg.Simulation
	if sim.DemandMean != 50 || sim.HorizonDays != 365 || sim.Seed != 42 {
		t.Errorf("Unexpected demand defaults: %+v", sim)
	}
	if sim.OrderingCost != "200.00" || sim.AnnualHoldingCost != "2.00" || sim.StockoutCost != "10.0" {
		t.Errorf("Unexpected cost defaults: %+v", sim)
	}
	if sim.ServiceLevel != 95 || sim.DemandStdDev != 15 || sim.LeadTimeDays != 5 {
		t.Errorf("Unexpected control defaults: %+v", sim)
	}
	if sim.SweepLow != 80 || sim.SweepHigh != 99.9 || sim.SweepPoints != 20 {
		t.Errorf("Unexpected sweep defaults: %+v", sim)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Cache.Enabled {
		t.Error("Expected cache to be disabled by default")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SIM_SEED", "7")
	t.Setenv("SIM_LEAD_TIME_DAYS", "12")
	t.Setenv("SIM_STOCKOUT_COST", "25.5")
	t.Setenv("CACHE_ENABLED", "true")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	cfg := fromViper(v)

	if cfg.Simulation.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Simulation.Seed)
	}
	if cfg.Simulation.LeadTimeDays != 12 {
		t.Errorf("Expected lead time 12, got %d", cfg.Simulation.LeadTimeDays)
	}
	if cfg.Simulation.StockoutCost != "25.5" {
		t.Errorf("Expected stockout cost 25.5, got %s", cfg.Simulation.StockoutCost)
	}
	if !cfg.Cache.Enabled {
		t.Error("Expected cache to be enabled")
	}
	// Untouched keys keep their defaults.
	if cfg.Simulation.HorizonDays != 365 {
		t.Errorf("Expected horizon 365, got %d", cfg.Simulation.HorizonDays)
	}
}
