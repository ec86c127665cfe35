// Package currencies holds the bundled list of currencies the price API supports.
package currencies

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed supported.yaml
var supportedYAML []byte

// Currency is one entry of the reference list.
type Currency struct {
	Code    string `yaml:"currency"`
	Country string `yaml:"country"`
}

var (
	loadOnce  sync.Once
	supported []Currency
	loadErr   error
)

// Load parses the embedded list once and returns it. Callers must not
// modify the returned slice.
func Load() ([]Currency, error) {
	loadOnce.Do(func() {
		supported, loadErr = parse(supportedYAML)
	})
	return supported, loadErr
}

func parse(data []byte) ([]Currency, error) {
	var list []Currency
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse currency list: %w", err)
	}
	seen := make(map[string]bool, len(list))
	for i, c := range list {
		if len(c.Code) != 3 {
			return nil, fmt.Errorf("currency list entry %d: invalid code %q", i, c.Code)
		}
		if seen[c.Code] {
			return nil, fmt.Errorf("currency list entry %d: duplicate code %s", i, c.Code)
		}
		seen[c.Code] = true
	}
	return list, nil
}

// Index returns the position of code in list, or -1.
func Index(list []Currency, code string) int {
	for i, c := range list {
		if c.Code == code {
			return i
		}
	}
	return -1
}

// Supported reports whether code is in the bundled list.
func Supported(code string) bool {
	list, err := Load()
	if err != nil {
		return false
	}
	return Index(list, code) >= 0
}
