package telemetry

import (
	"math"
	"testing"
)

func TestHealthStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p10, p50, p90 := HealthStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if std <= 0 {
		t.Errorf("std = %v, want > 0", std)
	}
	if p10 != 1 {
		t.Errorf("p10 = %v, want 1", p10)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
}

func TestHealthStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := HealthStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestHealthStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := HealthStats([]float64{42})
	if mean != 42 || p10 != 42 || p50 != 42 || p90 != 42 {
		t.Errorf("single sample stats = %v %v %v %v, want all 42", mean, p10, p50, p90)
	}
	if std != 0 {
		t.Errorf("single sample std = %v, want 0", std)
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector(10)

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath()
	c.RecordKill()
	c.RecordDelivery(3)
	c.RecordConversion()

	// Mid-window frames do not flush.
	c.EndFrame(FrameSample{Frame: 5, Bots: 40})
	if len(c.History()) != 0 {
		t.Fatal("window flushed early")
	}

	c.EndFrame(FrameSample{Frame: 10, Bots: 42, Predators: 3, Food: 20, BotHealth: []float64{50, 100}})
	history := c.History()
	if len(history) != 1 {
		t.Fatalf("got %d windows, want 1", len(history))
	}

	w := history[0]
	if w.WindowStart != 0 || w.WindowEnd != 10 {
		t.Errorf("window bounds = [%d, %d], want [0, 10]", w.WindowStart, w.WindowEnd)
	}
	if w.Births != 2 || w.Deaths != 1 || w.Kills != 1 {
		t.Errorf("events = %d/%d/%d, want 2/1/1", w.Births, w.Deaths, w.Kills)
	}
	if w.Deliveries != 3 || w.Conversions != 1 {
		t.Errorf("deliveries/conversions = %d/%d, want 3/1", w.Deliveries, w.Conversions)
	}
	if w.Bots != 42 || w.Predators != 3 || w.Food != 20 {
		t.Errorf("population = %d/%d/%d", w.Bots, w.Predators, w.Food)
	}
	if w.HealthMean != 75 {
		t.Errorf("health mean = %v, want 75", w.HealthMean)
	}

	// Counters reset after flush.
	c.EndFrame(FrameSample{Frame: 20, Bots: 42})
	if got := c.History()[1]; got.Births != 0 || got.Kills != 0 {
		t.Errorf("counters not reset: %+v", got)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	c.EndFrame(FrameSample{Frame: 1})
	if len(c.History()) != 1 {
		t.Error("window size below 1 must clamp to 1")
	}
}
