// Package telemetry accumulates per-window simulation statistics and
// writes them to CSV for offline analysis.
package telemetry

// FrameSample is the end-of-frame population snapshot fed to the
// collector.
type FrameSample struct {
	Frame     int64
	Bots      int
	Predators int
	Food      int
	BotHealth []float64
}

// Collector accumulates events within fixed-size frame windows and
// produces WindowStats.
type Collector struct {
	windowFrames int64
	windowStart  int64

	// Event counters for the current window
	births      int
	deaths      int
	kills       int
	deliveries  int
	conversions int

	history []WindowStats
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordBirth records a bot birth (offspring or replacement).
func (c *Collector) RecordBirth() { c.births++ }

// RecordDeath records a bot death of any cause.
func (c *Collector) RecordDeath() { c.deaths++ }

// RecordKill records a predator kill.
func (c *Collector) RecordKill() { c.kills++ }

// RecordDelivery records units of food or ore delivered to the base.
func (c *Collector) RecordDelivery(units int) { c.deliveries += units }

// RecordConversion records one tick-economy resource conversion.
func (c *Collector) RecordConversion() { c.conversions++ }

// EndFrame ingests the end-of-frame sample and flushes the window if
// it is complete.
func (c *Collector) EndFrame(s FrameSample) {
	if s.Frame-c.windowStart < c.windowFrames {
		return
	}
	c.history = append(c.history, c.Flush(s))
}

// Flush produces a WindowStats from the current counters and the given
// sample, and resets the window.
func (c *Collector) Flush(s FrameSample) WindowStats {
	mean, std, p10, p50, p90 := HealthStats(s.BotHealth)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   s.Frame,

		Bots:      s.Bots,
		Predators: s.Predators,
		Food:      s.Food,

		Births:      c.births,
		Deaths:      c.deaths,
		Kills:       c.kills,
		Deliveries:  c.deliveries,
		Conversions: c.conversions,

		HealthMean: mean,
		HealthStd:  std,
		HealthP10:  p10,
		HealthP50:  p50,
		HealthP90:  p90,
	}

	c.windowStart = s.Frame
	c.births, c.deaths, c.kills = 0, 0, 0
	c.deliveries, c.conversions = 0, 0

	return stats
}

// History returns all flushed windows, oldest first.
func (c *Collector) History() []WindowStats { return c.history }
