package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Parse decodes a JSON ruleset document. Unknown fields are rejected so a
// typo in an authored ruleset fails loudly instead of silently relaxing a
// condition.
func Parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset: %w", err)
	}
	return &rs, nil
}

// Load reads and decodes a JSON ruleset from a file, then validates its
// structure. Error-severity issues abort the load; warnings are returned
// alongside the ruleset for the caller to report.
func Load(path string) (*Ruleset, Issues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read ruleset file %q: %w", path, err)
	}

	rs, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	issues := Validate(rs)
	if err := issues.Err(); err != nil {
		return nil, issues, err
	}
	return rs, issues, nil
}

// ParseAttributes decodes a JSON attribute mapping.
func ParseAttributes(data []byte) (Attributes, error) {
	var attrs Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("failed to parse attributes: %w", err)
	}
	return attrs, nil
}

// LoadAttributes reads and decodes a JSON attribute mapping from a file.
func LoadAttributes(path string) (Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes file %q: %w", path, err)
	}
	return ParseAttributes(data)
}
