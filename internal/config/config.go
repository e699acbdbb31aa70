package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "config.json"

var (
	// ErrInvalidConfig marks any malformed click configuration. The process
	// must not start clicking with a config that fails validation.
	ErrInvalidConfig = errors.New("invalid click configuration")
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("click configuration not found")
)

// ClickPoint is one screen location plus the delays around clicking it.
type ClickPoint struct {
	X         int
	Y         int
	PreDelay  time.Duration
	PostDelay time.Duration
}

// ClickConfig is the full click plan. It is loaded once and only read
// afterwards, so it can be shared without locking.
type ClickConfig struct {
	Points          []ClickPoint
	RoundStartDelay time.Duration
	RoundEndDelay   time.Duration

	// Source is the file the configuration was read from, if any.
	Source string
}

// Format selects the document encoding of a click configuration.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// document is the on-disk shape. Each point is [x, y, pre_delay_ms, post_delay_ms].
// Pointers let us tell a missing value or a null apart from an explicit zero.
type document struct {
	Points         [][]*int64 `json:"points" yaml:"points"`
	PreRoundDelay  *int64     `json:"pre_round_delay" yaml:"pre_round_delay"`
	PostRoundDelay *int64     `json:"post_round_delay" yaml:"post_round_delay"`
}

// FormatForPath picks the decoder by file extension; anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates the click configuration at path. An empty path
// means ./config.json.
func Load(path string) (*ClickConfig, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		candidate = DefaultFileName
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, candidate)
		}
		return nil, fmt.Errorf("read click configuration %q: %w", candidate, err)
	}

	cfg, err := Parse(data, FormatForPath(candidate))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", candidate, err)
	}
	cfg.Source = candidate
	return cfg, nil
}

// Parse decodes and validates a click configuration document.
func Parse(data []byte, format Format) (*ClickConfig, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrInvalidConfig, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, format)
	}
	return doc.toConfig()
}

func (d document) toConfig() (*ClickConfig, error) {
	if d.Points == nil {
		return nil, fmt.Errorf("%w: points is required", ErrInvalidConfig)
	}
	if len(d.Points) == 0 {
		return nil, fmt.Errorf("%w: points must not be empty", ErrInvalidConfig)
	}
	if d.PreRoundDelay == nil {
		return nil, fmt.Errorf("%w: pre_round_delay is required", ErrInvalidConfig)
	}
	if d.PostRoundDelay == nil {
		return nil, fmt.Errorf("%w: post_round_delay is required", ErrInvalidConfig)
	}

	start, err := millis("pre_round_delay", *d.PreRoundDelay)
	if err != nil {
		return nil, err
	}
	end, err := millis("post_round_delay", *d.PostRoundDelay)
	if err != nil {
		return nil, err
	}

	cfg := &ClickConfig{
		Points:          make([]ClickPoint, 0, len(d.Points)),
		RoundStartDelay: start,
		RoundEndDelay:   end,
	}
	for i, raw := range d.Points {
		point, err := parsePoint(i, raw)
		if err != nil {
			return nil, err
		}
		cfg.Points = append(cfg.Points, point)
	}
	return cfg, nil
}

func parsePoint(index int, fields []*int64) (ClickPoint, error) {
	if len(fields) != 4 {
		return ClickPoint{}, fmt.Errorf("%w: points[%d]: expected [x, y, pre_delay, post_delay], got %d values",
			ErrInvalidConfig, index, len(fields))
	}
	var raw [4]int64
	for j, v := range fields {
		if v == nil {
			return ClickPoint{}, fmt.Errorf("%w: points[%d][%d]: expected an integer, got null",
				ErrInvalidConfig, index, j)
		}
		raw[j] = *v
	}
	for axis, v := range raw[:2] {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return ClickPoint{}, fmt.Errorf("%w: points[%d][%d]: coordinate %d out of range",
				ErrInvalidConfig, index, axis, v)
		}
	}
	pre, err := millis(fmt.Sprintf("points[%d] pre_delay", index), raw[2])
	if err != nil {
		return ClickPoint{}, err
	}
	post, err := millis(fmt.Sprintf("points[%d] post_delay", index), raw[3])
	if err != nil {
		return ClickPoint{}, err
	}
	return ClickPoint{X: int(raw[0]), Y: int(raw[1]), PreDelay: pre, PostDelay: post}, nil
}

// maxDelayMillis keeps delays representable as a time.Duration.
const maxDelayMillis = int64(math.MaxInt64 / int64(time.Millisecond))

func millis(field string, v int64) (time.Duration, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, field, v)
	}
	if v > maxDelayMillis {
		return 0, fmt.Errorf("%w: %s is too large: %d", ErrInvalidConfig, field, v)
	}
	return time.Duration(v) * time.Millisecond, nil
}

// TotalRoundDelay is the time one uninterrupted round spends sleeping.
func (c *ClickConfig) TotalRoundDelay() time.Duration {
	total := c.RoundStartDelay + c.RoundEndDelay
	for _, p := range c.Points {
		total += p.PreDelay + p.PostDelay
	}
	return total
}
