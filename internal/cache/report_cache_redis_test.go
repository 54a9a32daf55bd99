package cache

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/config"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/simulation"
	"github.com/alicebob/miniredis/v2"
)

func newRedisCache(t *testing.T) (*miniredis.Miniredis, ReportCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewReportCache(config.CacheConfig{
		Enabled:          true,
		RedisURL:         "redis://" + mr.Addr(),
		ReportTTLSeconds: 60,
	})
	if err != nil {
		t.Fatalf("NewReportCache failed: %v", err)
	}
	return mr, c
}

// computedReport builds a real report so decimals carry full division precision.
func computedReport(t *testing.T, req domain.ReportRequest) *domain.DashboardReport {
	t.Helper()
	params := req.PolicyParameters()
	demand, err := simulation.GenerateDemand(simulation.DemandProfile{
		Mean: req.DemandMean, StdDev: req.DemandStdDev, Horizon: req.HorizonDays, Seed: req.Seed,
	})
	if err != nil {
		t.Fatalf("GenerateDemand failed: %v", err)
	}
	policy, err := simulation.BuildPolicy(params, demand)
	if err != nil {
		t.Fatalf("BuildPolicy failed: %v", err)
	}
	run := simulation.NewRunConfig(params, policy)
	unprotected, err := simulation.Simulate(run, demand, policy.DeterministicReorderPoint)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	protected, err := simulation.Simulate(run, demand, policy.ReorderPoint)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	grid, err := simulation.ServiceLevelGrid(req.SweepLow, req.SweepHigh, req.SweepPoints)
	if err != nil {
		t.Fatalf("ServiceLevelGrid failed: %v", err)
	}
	points, err := simulation.Sweep(context.Background(), params, demand, grid, 2)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	report := &domain.DashboardReport{
		Request:      req,
		Policy:       policy,
		Demand:       demand,
		Unprotected:  unprotected,
		Protected:    protected,
		Comparison:   simulation.Compare(unprotected, protected),
		Sweep:        points,
		CurrentLevel: req.TargetServiceLevel,
	}
	if best, ok := simulation.CheapestPoint(points); ok {
		report.Cheapest = &best
	}
	return report
}

func assertSameResult(t *testing.T, name string, want, got *domain.SimulationResult) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: expected a result, got nil", name)
	}
	if !got.HoldingCost.Equal(want.HoldingCost) || !got.OrderingCost.Equal(want.OrderingCost) ||
		!got.StockoutCost.Equal(want.StockoutCost) || !got.TotalCost.Equal(want.TotalCost) {
		t.Errorf("%s: costs changed: want %s/%s/%s/%s, got %s/%s/%s/%s", name,
			want.HoldingCost, want.OrderingCost, want.StockoutCost, want.TotalCost,
			got.HoldingCost, got.OrderingCost, got.StockoutCost, got.TotalCost)
	}
	if !slices.Equal(got.Trajectory, want.Trajectory) {
		t.Errorf("%s: trajectory changed", name)
	}
	if !slices.Equal(got.Orders, want.Orders) {
		t.Errorf("%s: order log changed", name)
	}
	if got.UnitsLost != want.UnitsLost || got.RealizedServiceLevel != want.RealizedServiceLevel || got.AverageOnHand != want.AverageOnHand {
		t.Errorf("%s: metrics changed: want %+v, got %+v", name, want, got)
	}
}

func TestRedisReportCache_RoundTrip(t *testing.T) {
	mr, c := newRedisCache(t)
	ctx := context.Background()
	req := baseRequest()

	if _, ok, err := c.GetReport(ctx, req); ok || err != nil {
		t.Fatalf("Expected a miss on an empty cache, got ok=%v err=%v", ok, err)
	}

	want := computedReport(t, req)
	if err := c.SetReport(ctx, req, want); err != nil {
		t.Fatalf("SetReport failed: %v", err)
	}
	if ttl := mr.TTL(ReportKey(req)); ttl != 60*time.Second {
		t.Errorf("Expected a 60s TTL, got %s", ttl)
	}

	got, ok, err := c.GetReport(ctx, req)
	if err != nil || !ok {
		t.Fatalf("Expected a hit, got ok=%v err=%v", ok, err)
	}

	if got.Policy != want.Policy {
		t.Errorf("Expected policy %+v, got %+v", want.Policy, got.Policy)
	}
	if !slices.Equal(got.Demand, want.Demand) {
		t.Error("Demand series changed in the cache")
	}
	assertSameResult(t, "unprotected", want.Unprotected, got.Unprotected)
	assertSameResult(t, "protected", want.Protected, got.Protected)
	if got.Comparison.SalesSaved != want.Comparison.SalesSaved || !got.Comparison.CostSavings.Equal(want.Comparison.CostSavings) {
		t.Errorf("Expected comparison %+v, got %+v", want.Comparison, got.Comparison)
	}
	if !got.Request.OrderingCost.Equal(want.Request.OrderingCost) || got.Request.Seed != want.Request.Seed {
		t.Errorf("Request changed in the cache: %+v", got.Request)
	}

	if len(got.Sweep) != len(want.Sweep) {
		t.Fatalf("Expected %d sweep points, got %d", len(want.Sweep), len(got.Sweep))
	}
	for i := range want.Sweep {
		if got.Sweep[i].TargetServiceLevel != want.Sweep[i].TargetServiceLevel || !got.Sweep[i].TotalCost.Equal(want.Sweep[i].TotalCost) {
			t.Errorf("Sweep point %d changed: want %+v, got %+v", i, want.Sweep[i], got.Sweep[i])
		}
	}
	if got.Cheapest == nil || want.Cheapest == nil {
		t.Fatal("Expected a cheapest point on both reports")
	}
	if got.Cheapest.TargetServiceLevel != want.Cheapest.TargetServiceLevel || !got.Cheapest.TotalCost.Equal(want.Cheapest.TotalCost) {
		t.Errorf("Expected cheapest %+v, got %+v", *want.Cheapest, *got.Cheapest)
	}

	other := req
	other.Seed = 43
	if _, ok, err := c.GetReport(ctx, other); ok || err != nil {
		t.Errorf("Expected a miss for a different request, got ok=%v err=%v", ok, err)
	}
}

func TestRedisReportCache_CorruptEntry(t *testing.T) {
	mr, c := newRedisCache(t)
	req := baseRequest()

	if err := mr.Set(ReportKey(req), "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, err := c.GetReport(context.Background(), req); ok || err == nil {
		t.Errorf("Expected a decode error, got ok=%v err=%v", ok, err)
	}
}

func TestRedisReportCache_InvalidateAll(t *testing.T) {
	mr, c := newRedisCache(t)
	ctx := context.Background()

	// more entries than one delete batch
	for i := 0; i < purgeBatchSize+5; i++ {
		req := baseRequest()
		req.Seed = uint64(i)
		if err := c.SetReport(ctx, req, &domain.DashboardReport{Request: req}); err != nil {
			t.Fatalf("SetReport failed: %v", err)
		}
	}
	if err := mr.Set("simulation:defaults", "keep"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := mr.Set("session:abc", "keep"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll failed: %v", err)
	}

	keys := mr.Keys()
	if len(keys) != 2 || !slices.Contains(keys, "simulation:defaults") || !slices.Contains(keys, "session:abc") {
		t.Errorf("Expected only foreign keys to survive, got %v", keys)
	}
	if _, ok, err := c.GetReport(ctx, baseRequest()); ok || err != nil {
		t.Errorf("Expected a miss after purge, got ok=%v err=%v", ok, err)
	}
}

func TestNewReportCache_UnreachableRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis failed to start: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := NewReportCache(config.CacheConfig{Enabled: true, RedisURL: "redis://" + addr}); err == nil {
		t.Error("Expected an error when redis does not answer")
	}
}
