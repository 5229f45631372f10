package outfit

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of generation and learning. The defaults keep
// the long-standing behavior: 15% exploration, 0.1 per rating point, and
// ratings of 4+ cancel the exposure penalty.
type Config struct {
	ExplorationRate     float64 `yaml:"exploration_rate"`
	LearningRate        float64 `yaml:"learning_rate"`
	NeutralRating       int     `yaml:"neutral_rating"`
	GoodRatingThreshold int     `yaml:"good_rating_threshold"`
	DefaultRating       int     `yaml:"default_rating"`
	MinScore            float64 `yaml:"min_score"`
	MaxScore            float64 `yaml:"max_score"`
	// Seed fixes the random source; 0 draws a fresh seed at startup.
	Seed uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		ExplorationRate:     0.15,
		LearningRate:        0.1,
		NeutralRating:       3,
		GoodRatingThreshold: 4,
		DefaultRating:       3,
		MinScore:            -1.0,
		MaxScore:            1.0,
	}
}

// LoadConfigFile overlays the YAML file at path onto base. Keys absent from
// the file keep their base value.
func LoadConfigFile(path string, base Config) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read outfit config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse outfit config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ExplorationRate < 0 || c.ExplorationRate > 1 {
		return fmt.Errorf("exploration_rate must be within [0,1], got %v", c.ExplorationRate)
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("learning_rate must be >= 0, got %v", c.LearningRate)
	}
	if c.MinScore > c.MaxScore {
		return fmt.Errorf("min_score %v exceeds max_score %v", c.MinScore, c.MaxScore)
	}
	if c.DefaultRating <= 0 {
		return fmt.Errorf("default_rating must be positive, got %d", c.DefaultRating)
	}
	return nil
}
