package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
)

// seedStream is the fixed second word of the PCG state; only Seed varies between series.
const seedStream = 0x9e3779b97f4a7c15

// DemandProfile parameterizes a demand series.
type DemandProfile struct {
	Mean    float64
	StdDev  float64
	Horizon int
	Seed    uint64
}

// GenerateDemand draws Horizon daily demands from Normal(Mean, StdDev), clamps
// them at zero and rounds half to even. The generator is created per call from
// Seed, so equal profiles always produce equal series.
func GenerateDemand(profile DemandProfile) (domain.DemandSeries, error) {
	if profile.Horizon <= 0 || profile.Horizon > domain.MaxHorizonDays {
		return nil, fmt.Errorf("%w: horizon must lie in [1,%d] days, got %d", domain.ErrInvalidParameter, domain.MaxHorizonDays, profile.Horizon)
	}
	if math.IsNaN(profile.Mean) || math.Abs(profile.Mean) > domain.MaxDemandMean {
		return nil, fmt.Errorf("%w: demand mean must be finite and at most %g in magnitude, got %v", domain.ErrInvalidParameter, domain.MaxDemandMean, profile.Mean)
	}
	if math.IsNaN(profile.StdDev) || profile.StdDev < 0 || profile.StdDev > domain.MaxDemandStdDev {
		return nil, fmt.Errorf("%w: demand std dev must lie in [0,%g], got %v", domain.ErrInvalidParameter, domain.MaxDemandStdDev, profile.StdDev)
	}

	rng := rand.New(rand.NewPCG(profile.Seed, seedStream))
	series := make(domain.DemandSeries, profile.Horizon)
	for t := range series {
		raw := profile.Mean + profile.StdDev*rng.NormFloat64()
		series[t] = int(math.RoundToEven(math.Max(raw, 0)))
	}

	return series, nil
}
