package grade

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lexsift/lexsift/internal/cefr"
)

// Unlimited disables a ceiling in a Rule or Limits entry.
const Unlimited = -1

// Limits caps the number of tokens allowed at each CEFR level for a
// sentence to qualify at some level. Unlimited (-1) disables a cap.
type Limits struct {
	A1, A2, B1, B2, C1, C2 int
}

// At returns the cap for the given level.
func (l Limits) At(level cefr.Level) int {
	switch level {
	case cefr.A1:
		return l.A1
	case cefr.A2:
		return l.A2
	case cefr.B1:
		return l.B1
	case cefr.B2:
		return l.B2
	case cefr.C1:
		return l.C1
	case cefr.C2:
		return l.C2
	default:
		return Unlimited
	}
}

// Rule is the full constraint set a sentence must satisfy to qualify at one
// level: two word-count ceilings plus per-level token caps.
type Rule struct {
	MaxWordsWithStops    int
	MaxWordsWithoutStops int
	LevelLimits          Limits
}

// Config holds one Rule per CEFR level. The level selector walks them in
// A1..C2 order and returns the first level whose rule is satisfied.
type Config struct {
	A1, A2, B1, B2, C1, C2 Rule
}

// Rule returns the rule for the given level.
func (c Config) Rule(level cefr.Level) Rule {
	switch level {
	case cefr.A1:
		return c.A1
	case cefr.A2:
		return c.A2
	case cefr.B1:
		return c.B1
	case cefr.B2:
		return c.B2
	case cefr.C1:
		return c.C1
	default:
		return c.C2
	}
}

// noLimits leaves every per-level cap open.
var noLimits = Limits{Unlimited, Unlimited, Unlimited, Unlimited, Unlimited, Unlimited}

// Default is the calibrated production constraint table. Each level allows
// unlimited tokens at or below itself and zero above (word-count ceilings
// tighten the lower levels further).
var Default = Config{
	A1: Rule{
		MaxWordsWithStops:    11,
		MaxWordsWithoutStops: 9,
		LevelLimits:          Limits{A1: Unlimited, A2: 0, B1: 0, B2: 0, C1: 0, C2: 0},
	},
	A2: Rule{
		MaxWordsWithStops:    16,
		MaxWordsWithoutStops: 13,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: 0, B2: 0, C1: 0, C2: 0},
	},
	B1: Rule{
		MaxWordsWithStops:    20,
		MaxWordsWithoutStops: 15,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: Unlimited, B2: 0, C1: 0, C2: 0},
	},
	B2: Rule{
		MaxWordsWithStops:    25,
		MaxWordsWithoutStops: 20,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: Unlimited, B2: Unlimited, C1: 0, C2: 0},
	},
	C1: Rule{
		MaxWordsWithStops:    30,
		MaxWordsWithoutStops: 25,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: Unlimited, B2: Unlimited, C1: Unlimited, C2: 0},
	},
	C2: Rule{
		MaxWordsWithStops:    Unlimited,
		MaxWordsWithoutStops: Unlimited,
		LevelLimits:          noLimits,
	},
}

// Approx is the looser preset: each level tolerates a small number of
// tokens from the next levels up, trading precision for recall.
var Approx = Config{
	A1: Rule{
		MaxWordsWithStops:    12,
		MaxWordsWithoutStops: 10,
		LevelLimits:          Limits{A1: Unlimited, A2: 1, B1: 0, B2: 0, C1: 0, C2: 0},
	},
	A2: Rule{
		MaxWordsWithStops:    16,
		MaxWordsWithoutStops: 13,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: 1, B2: 1, C1: 0, C2: 0},
	},
	B1: Rule{
		MaxWordsWithStops:    20,
		MaxWordsWithoutStops: 15,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: Unlimited, B2: 2, C1: 1, C2: 1},
	},
	B2: Rule{
		MaxWordsWithStops:    25,
		MaxWordsWithoutStops: 20,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: Unlimited, B2: Unlimited, C1: 1, C2: 1},
	},
	C1: Rule{
		MaxWordsWithStops:    30,
		MaxWordsWithoutStops: 25,
		LevelLimits:          Limits{A1: Unlimited, A2: Unlimited, B1: Unlimited, B2: Unlimited, C1: Unlimited, C2: 2},
	},
	C2: Rule{
		MaxWordsWithStops:    Unlimited,
		MaxWordsWithoutStops: Unlimited,
		LevelLimits:          noLimits,
	},
}

// Preset resolves a preset name ("default" or "approx").
func Preset(name string) (Config, error) {
	switch name {
	case "", "default":
		return Default, nil
	case "approx":
		return Approx, nil
	default:
		return Config{}, fmt.Errorf("unknown difficulty preset %q", name)
	}
}

// Validate checks that every ceiling is either Unlimited or non-negative.
func (c Config) Validate() error {
	for _, level := range cefr.All {
		r := c.Rule(level)
		if r.MaxWordsWithStops < Unlimited {
			return fmt.Errorf("level %s: max_words_with_stops %d out of range", level, r.MaxWordsWithStops)
		}
		if r.MaxWordsWithoutStops < Unlimited {
			return fmt.Errorf("level %s: max_words_without_stops %d out of range", level, r.MaxWordsWithoutStops)
		}
		for _, m := range cefr.All {
			if r.LevelLimits.At(m) < Unlimited {
				return fmt.Errorf("level %s: limit for %s tokens %d out of range", level, m, r.LevelLimits.At(m))
			}
		}
	}
	return nil
}

// tomlRule mirrors one [levels.X] table. Pointer fields distinguish
// "absent" from "zero" so a partially specified table is rejected instead
// of silently defaulting.
type tomlRule struct {
	MaxWordsWithStops    *int           `toml:"max_words_with_stops"`
	MaxWordsWithoutStops *int           `toml:"max_words_without_stops"`
	LevelLimits          map[string]int `toml:"level_limits"`
}

type tomlFile struct {
	Levels map[string]tomlRule `toml:"levels"`
}

// LoadFile reads a complete constraint table from a TOML file. Every level
// must be fully specified; the result is validated before being returned.
func LoadFile(path string) (Config, error) {
	var raw tomlFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode difficulty config: %w", err)
	}

	var cfg Config
	for _, level := range cefr.All {
		rt, ok := raw.Levels[level.String()]
		if !ok {
			return Config{}, fmt.Errorf("difficulty config missing level %s", level)
		}
		if rt.MaxWordsWithStops == nil || rt.MaxWordsWithoutStops == nil {
			return Config{}, fmt.Errorf("level %s: word-count ceilings must both be specified", level)
		}

		rule := Rule{
			MaxWordsWithStops:    *rt.MaxWordsWithStops,
			MaxWordsWithoutStops: *rt.MaxWordsWithoutStops,
		}
		for _, m := range cefr.All {
			limit, ok := rt.LevelLimits[m.String()]
			if !ok {
				return Config{}, fmt.Errorf("level %s: level_limits missing %s", level, m)
			}
			switch m {
			case cefr.A1:
				rule.LevelLimits.A1 = limit
			case cefr.A2:
				rule.LevelLimits.A2 = limit
			case cefr.B1:
				rule.LevelLimits.B1 = limit
			case cefr.B2:
				rule.LevelLimits.B2 = limit
			case cefr.C1:
				rule.LevelLimits.C1 = limit
			case cefr.C2:
				rule.LevelLimits.C2 = limit
			}
		}

		switch level {
		case cefr.A1:
			cfg.A1 = rule
		case cefr.A2:
			cfg.A2 = rule
		case cefr.B1:
			cfg.B1 = rule
		case cefr.B2:
			cfg.B2 = rule
		case cefr.C1:
			cfg.C1 = rule
		case cefr.C2:
			cfg.C2 = rule
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
