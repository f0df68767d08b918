package scoring

import "fmt"

// Weights holds the configured weight of each signal group. Every weight
// must land in (0,1]; the sum is free since aggregation re-normalizes.
type Weights struct {
	Valuation float64 `mapstructure:"valuation" json:"valuation"`
	Momentum  float64 `mapstructure:"momentum" json:"momentum"`
	Sentiment float64 `mapstructure:"sentiment" json:"sentiment"`
	Risk      float64 `mapstructure:"risk" json:"risk"`
}

// Thresholds are the lower bounds of the recommendation bands. Each band is
// closed on its lower bound and exclusive on the upper; together they
// partition [0,100] with no gaps.
type Thresholds struct {
	StrongBuy float64 `mapstructure:"strong_buy" json:"strong_buy"`
	Buy       float64 `mapstructure:"buy" json:"buy"`
	Hold      float64 `mapstructure:"hold" json:"hold"`
	Sell      float64 `mapstructure:"sell" json:"sell"`
}

// Band is a sector reference range for trailing P/E.
type Band struct {
	Low  float64 `mapstructure:"low" json:"low"`
	High float64 `mapstructure:"high" json:"high"`
}

// Config is the read-only scoring configuration shared by all runs. It is
// loaded once per process and never mutated afterwards.
type Config struct {
	Weights       Weights         `mapstructure:"weights" json:"weights"`
	Thresholds    Thresholds      `mapstructure:"thresholds" json:"thresholds"`
	RiskVetoFloor float64         `mapstructure:"risk_veto_floor" json:"risk_veto_floor"`
	SectorBands   map[string]Band `mapstructure:"sector_bands" json:"sector_bands"`
	DefaultBand   Band            `mapstructure:"default_band" json:"default_band"`
}

// DefaultConfig returns the weights and thresholds used when the config file
// does not override them.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Valuation: 0.30,
			Momentum:  0.30,
			Sentiment: 0.25,
			Risk:      0.15,
		},
		Thresholds: Thresholds{
			StrongBuy: 80,
			Buy:       65,
			Hold:      45,
			Sell:      25,
		},
		RiskVetoFloor: 15,
		SectorBands: map[string]Band{
			"technology": {Low: 18, High: 55},
			"financial":  {Low: 8, High: 25},
			"energy":     {Low: 6, High: 20},
			"healthcare": {Low: 14, High: 40},
		},
		DefaultBand: Band{Low: 10, High: 35},
	}
}

// Validate rejects weights outside (0,1], non-descending thresholds, and
// bands of zero or negative width.
func (c Config) Validate() error {
	for group, w := range map[Group]float64{
		GroupValuation: c.Weights.Valuation,
		GroupMomentum:  c.Weights.Momentum,
		GroupSentiment: c.Weights.Sentiment,
		GroupRisk:      c.Weights.Risk,
	} {
		if w <= 0 || w > 1 {
			return fmt.Errorf("weight for group %q must be in (0,1], got %v", group, w)
		}
	}

	t := c.Thresholds
	if !(t.StrongBuy > t.Buy && t.Buy > t.Hold && t.Hold > t.Sell && t.Sell > 0) {
		return fmt.Errorf("thresholds must descend strong_buy > buy > hold > sell > 0, got %+v", t)
	}
	if t.StrongBuy > 100 {
		return fmt.Errorf("strong_buy threshold must not exceed 100, got %v", t.StrongBuy)
	}

	if c.RiskVetoFloor < 0 || c.RiskVetoFloor > 100 {
		return fmt.Errorf("risk_veto_floor must be in [0,100], got %v", c.RiskVetoFloor)
	}

	if c.DefaultBand.Low >= c.DefaultBand.High {
		return fmt.Errorf("default_band must have low < high, got %+v", c.DefaultBand)
	}
	for sector, band := range c.SectorBands {
		if band.Low >= band.High {
			return fmt.Errorf("sector_bands[%s] must have low < high, got %+v", sector, band)
		}
	}

	return nil
}

// BandFor returns the reference P/E band for a sector, falling back to the
// default band when the sector is unknown or empty.
func (c Config) BandFor(sector string) Band {
	if band, ok := c.SectorBands[sector]; ok {
		return band
	}
	return c.DefaultBand
}
