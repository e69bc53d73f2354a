package loader

import (
	"fmt"
	"os"

	"github.com/huangsam/paleoreel/schema"
	"gopkg.in/yaml.v3"
)

// intervalFile mirrors the YAML layout of an interval definition file.
type intervalFile struct {
	Intervals []rawInterval `yaml:"intervals"`
}

type rawInterval struct {
	Label    string   `yaml:"label"`
	Start    *float64 `yaml:"start"`
	End      *float64 `yaml:"end"`
	Relevant []string `yaml:"relevant"`
	Note     string   `yaml:"note"`
}

// LoadIntervals reads an interval definition file. An empty path yields an
// empty set, which leaves every row at the default emphasis.
func LoadIntervals(path string) (schema.IntervalSet, error) {
	if path == "" {
		return schema.IntervalSet{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading interval file: %w", err)
	}
	return ParseIntervals(data)
}

// ParseIntervals decodes YAML interval definitions, keeping their order.
func ParseIntervals(data []byte) (schema.IntervalSet, error) {
	var file intervalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing interval file: %w", err)
	}

	out := make(schema.IntervalSet, 0, len(file.Intervals))
	for i, raw := range file.Intervals {
		if raw.Start == nil || raw.End == nil {
			return nil, fmt.Errorf("interval %d (%q): start and end are required", i, raw.Label)
		}
		out = append(out, schema.Interval{
			Label:    raw.Label,
			Start:    *raw.Start,
			End:      *raw.End,
			Relevant: raw.Relevant,
			Note:     raw.Note,
		})
	}
	return out, nil
}
