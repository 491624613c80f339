package goals

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format selects the text encoding of the persisted goal list.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown storage format %q", s)
	}
}

// Encode serializes the whole list.
func Encode(list []Goal, f Format) ([]byte, error) {
	if list == nil {
		list = []Goal{}
	}
	switch f {
	case FormatJSON, "":
		return json.Marshal(list)
	case FormatYAML:
		return yaml.Marshal(list)
	default:
		return nil, fmt.Errorf("unknown storage format %q", f)
	}
}

// Decode parses a list produced by Encode with the same format. Times come
// back as the same instant; their location and monotonic reading are not
// kept, so compare them with time.Time.Equal.
func Decode(data []byte, f Format) ([]Goal, error) {
	var list []Goal
	var err error
	switch f {
	case FormatJSON, "":
		err = json.Unmarshal(data, &list)
	case FormatYAML:
		err = yaml.Unmarshal(data, &list)
	default:
		return nil, fmt.Errorf("unknown storage format %q", f)
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Goal{}
	}
	return list, nil
}
