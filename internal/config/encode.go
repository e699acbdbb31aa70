package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func (c ClickConfig) toDocument() document {
	points := make([][]*int64, 0, len(c.Points))
	for _, p := range c.Points {
		points = append(points, []*int64{
			int64Ptr(int64(p.X)),
			int64Ptr(int64(p.Y)),
			int64Ptr(p.PreDelay.Milliseconds()),
			int64Ptr(p.PostDelay.Milliseconds()),
		})
	}
	start := c.RoundStartDelay.Milliseconds()
	end := c.RoundEndDelay.Milliseconds()
	return document{Points: points, PreRoundDelay: &start, PostRoundDelay: &end}
}

// MarshalJSON writes the configuration in the same shape Load reads.
func (c ClickConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toDocument())
}

// MarshalYAML writes the configuration in the same shape Load reads.
func (c ClickConfig) MarshalYAML() (interface{}, error) {
	return c.toDocument(), nil
}

// Encode serialises the configuration. Sub-millisecond parts of delays are
// dropped since the file format counts whole milliseconds.
func Encode(c ClickConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(c, "", "  ")
	case FormatYAML:
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
