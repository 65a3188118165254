package rulepack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies an encoding of the interchange format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions are YAML,
// which is a superset of JSON.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat converts a user-supplied name ("json", "yaml", "yml") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Parse decodes a pack in the given format.
func Parse(data []byte, format Format) (domain.RulePack, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return domain.RulePack{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// ParseJSON decodes a JSON rule pack.
func ParseJSON(data []byte) (domain.RulePack, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.RulePack{}, fmt.Errorf("failed to parse rule pack JSON: %w", err)
	}
	return Decode(raw)
}

// ParseYAML decodes a YAML rule pack.
func ParseYAML(data []byte) (domain.RulePack, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.RulePack{}, fmt.Errorf("failed to parse rule pack YAML: %w", err)
	}
	return Decode(raw)
}

// Decode converts a generic record (as produced by a JSON or YAML decoder) into a pack.
// The structural checks run first: the record must be a mapping with a non-empty
// string id and a rules sequence.
func Decode(raw any) (domain.RulePack, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return domain.RulePack{}, fmt.Errorf("%w: expected a mapping, got %T", domain.ErrMalformedRulePack, raw)
	}

	if id, ok := record["id"].(string); !ok || id == "" {
		return domain.RulePack{}, fmt.Errorf("%w: missing id", domain.ErrMalformedRulePack)
	}
	if _, ok := record["rules"].([]any); !ok {
		return domain.RulePack{}, fmt.Errorf("%w: rules must be a sequence", domain.ErrMalformedRulePack)
	}

	var pack domain.RulePack
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &pack,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.RulePack{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(record); err != nil {
		return domain.RulePack{}, fmt.Errorf("%w: %v", domain.ErrMalformedRulePack, err)
	}

	if err := Validate(pack); err != nil {
		return domain.RulePack{}, err
	}
	return pack, nil
}

// Marshal encodes the pack in the given format.
func Marshal(pack domain.RulePack, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return MarshalJSON(pack)
	case FormatYAML:
		return MarshalYAML(pack)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// MarshalJSON encodes the pack as indented JSON with a trailing newline.
func MarshalJSON(pack domain.RulePack) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(pack)); err != nil {
		return nil, fmt.Errorf("failed to encode rule pack %s: %w", pack.ID, err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes the pack as YAML with two-space indentation.
func MarshalYAML(pack domain.RulePack) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(pack)); err != nil {
		return nil, fmt.Errorf("failed to encode rule pack %s: %w", pack.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode rule pack %s: %w", pack.ID, err)
	}
	return buf.Bytes(), nil
}

// normalize keeps the output decodable: a nil rules slice would encode as null.
func normalize(pack domain.RulePack) domain.RulePack {
	if pack.Rules == nil {
		pack.Rules = []domain.Rule{}
	}
	return pack
}
