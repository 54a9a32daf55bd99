package simulation

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
)

func TestGenerateDemand_Deterministic(t *testing.T) {
	spec := DemandProfile{Mean: 50, StdDev: 15, Horizon: 365, Seed: 42}

	first, err := GenerateDemand(spec)
	if err != nil {
		t.Fatalf("GenerateDemand failed: %v", err)
	}
	second, err := GenerateDemand(spec)
	if err != nil {
		t.Fatalf("GenerateDemand failed: %v", err)
	}

	if len(first) != 365 {
		t.Fatalf("Expected 365 days, got %d", len(first))
	}
	if !slices.Equal(first, second) {
		t.Error("Expected identical series for identical seed and parameters")
	}

	other, err := GenerateDemand(DemandProfile{Mean: 50, StdDev: 15, Horizon: 365, Seed: 43})
	if err != nil {
		t.Fatalf("GenerateDemand failed: %v", err)
	}
	if slices.Equal(first, other) {
		t.Error("Expected a different seed to produce a different series")
	}
}

func TestGenerateDemand_NonNegative(t *testing.T) {
	// Mean close to zero forces many negative raw draws.
	series, err := GenerateDemand(DemandProfile{Mean: 2, StdDev: 30, Horizon: 1000, Seed: 7})
	if err != nil {
		t.Fatalf("GenerateDemand failed: %v", err)
	}

	zeros := 0
	for day, v := range series {
		if v < 0 {
			t.Fatalf("Day %d: demand %d is negative", day, v)
		}
		if v == 0 {
			zeros++
		}
	}
	if zeros == 0 {
		t.Error("Expected clamped zero-demand days")
	}
}

func TestGenerateDemand_SampleMoments(t *testing.T) {
	series, err := GenerateDemand(DemandProfile{Mean: 50, StdDev: 15, Horizon: 20000, Seed: 1})
	if err != nil {
		t.Fatalf("GenerateDemand failed: %v", err)
	}

	mean := float64(series.Total()) / float64(series.Len())
	if math.Abs(mean-50) > 1 {
		t.Errorf("Expected sample mean near 50, got %.2f", mean)
	}
}

func TestGenerateDemand_ZeroStdDev(t *testing.T) {
	testCases := []struct {
		name string
		mean float64
		want int
	}{
		{"integer mean", 50, 50},
		{"half rounds to even down", 50.5, 50},
		{"half rounds to even up", 51.5, 52},
		{"zero mean", 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			series, err := GenerateDemand(DemandProfile{Mean: tc.mean, StdDev: 0, Horizon: 30, Seed: 42})
			if err != nil {
				t.Fatalf("GenerateDemand failed: %v", err)
			}
			for day, v := range series {
				if v != tc.want {
					t.Fatalf("Day %d: expected %d, got %d", day, tc.want, v)
				}
			}
		})
	}
}

func TestGenerateDemand_Validation(t *testing.T) {
	testCases := []struct {
		name string
		spec DemandProfile
	}{
		{"zero horizon", DemandProfile{Mean: 50, StdDev: 15, Horizon: 0}},
		{"negative horizon", DemandProfile{Mean: 50, StdDev: 15, Horizon: -1}},
		{"negative std dev", DemandProfile{Mean: 50, StdDev: -1, Horizon: 10}},
		{"NaN mean", DemandProfile{Mean: math.NaN(), StdDev: 1, Horizon: 10}},
		{"infinite std dev", DemandProfile{Mean: 50, StdDev: math.Inf(1), Horizon: 10}},
		{"infinite mean", DemandProfile{Mean: math.Inf(1), StdDev: 1, Horizon: 10}},
		{"horizon beyond limit", DemandProfile{Mean: 50, StdDev: 15, Horizon: domain.MaxHorizonDays + 1}},
		{"huge horizon", DemandProfile{Mean: 50, StdDev: 15, Horizon: 1 << 40}},
		{"mean beyond limit", DemandProfile{Mean: 1e18, StdDev: 0, Horizon: 10}},
		{"std dev beyond limit", DemandProfile{Mean: 50, StdDev: 1e18, Horizon: 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateDemand(tc.spec)
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Fatalf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestGenerateDemand_AtLimits(t *testing.T) {
	series, err := GenerateDemand(DemandProfile{
		Mean:    domain.MaxDemandMean,
		StdDev:  domain.MaxDemandStdDev,
		Horizon: domain.MaxHorizonDays,
		Seed:    3,
	})
	if err != nil {
		t.Fatalf("GenerateDemand failed at the limits: %v", err)
	}
	if series.Len() != domain.MaxHorizonDays {
		t.Fatalf("Expected %d days, got %d", domain.MaxHorizonDays, series.Len())
	}
	if total := series.Total(); total <= 0 {
		t.Errorf("Expected a positive total without overflow, got %d", total)
	}
}
