package census

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drakos74/free-census/internal/model"
)

const (
	nameSeparator  = ": "
	valueSeparator = ","
	commentPrefix  = "|"
)

var (
	MalformedLineErr     = errors.New("malformed line")
	DuplicateCategoryErr = errors.New("duplicate category")
	MissingTargetErr     = errors.New("missing target")
	DuplicateTargetErr   = errors.New("duplicate target")
	InvalidNumberErr     = errors.New("invalid number")
)

// Metadata holds the lookup tables of the census schema.
// It is built once by ParseMetadata and never modified afterwards.
type Metadata struct {
	target   model.Feature
	features map[string]model.Feature
	order    []string
	owners   map[string]string
}

// Normalize lower-cases the given token and strips surrounding space and trailing periods.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".")
	return strings.ToLower(strings.TrimSpace(s))
}

// Split normalizes the line and splits it into its comma separated values.
func Split(line string) []string {
	parts := strings.Split(Normalize(line), valueSeparator)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, strings.TrimSpace(p))
	}
	return values
}

// LoadMetadata reads the whole names file and parses it.
func LoadMetadata(path string, target string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read metadata file '%s': %w", path, err)
	}
	meta, err := ParseMetadata(bytes.NewReader(data), target)
	if err != nil {
		return nil, fmt.Errorf("could not parse metadata file '%s': %w", path, err)
	}
	return meta, nil
}

// ParseMetadata parses lines of the form '<name>: <v1>, <v2>, ...'.
// The line named after the target populates the target domain, all others become features.
func ParseMetadata(r io.Reader, target string) (*Metadata, error) {
	target = Normalize(target)
	meta := &Metadata{
		features: make(map[string]model.Feature),
		order:    make([]string, 0),
		owners:   make(map[string]string),
	}
	hasTarget := false

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := Normalize(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		name, values, ok := strings.Cut(line, nameSeparator)
		if !ok {
			return nil, fmt.Errorf("line %d '%s': %w", n, line, MalformedLineErr)
		}
		name = strings.TrimSpace(name)
		feature := model.NewFeature(name, domain(values)...)

		if name == target {
			if hasTarget {
				return nil, fmt.Errorf("line %d: target '%s' declared twice: %w", n, name, DuplicateTargetErr)
			}
			meta.target = feature
			hasTarget = true
			continue
		}
		if _, ok := meta.features[name]; ok {
			return nil, fmt.Errorf("line %d: feature '%s' declared twice: %w", n, name, MalformedLineErr)
		}
		for _, c := range feature.Categories {
			if owner, ok := meta.owners[c]; ok {
				return nil, fmt.Errorf("line %d: category '%s' of '%s' already belongs to '%s': %w", n, c, name, owner, DuplicateCategoryErr)
			}
			meta.owners[c] = name
		}
		meta.features[name] = feature
		meta.order = append(meta.order, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not scan metadata: %w", err)
	}
	if !hasTarget {
		return nil, fmt.Errorf("no line for '%s': %w", target, MissingTargetErr)
	}
	for _, c := range meta.target.Categories {
		if owner, ok := meta.owners[c]; ok {
			return nil, fmt.Errorf("target category '%s' already belongs to '%s': %w", c, owner, DuplicateCategoryErr)
		}
	}
	return meta, nil
}

func domain(values string) []string {
	vv := make([]string, 0)
	for _, v := range strings.Split(values, valueSeparator) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		vv = append(vv, v)
	}
	return vv
}

// Target returns the target feature.
func (m *Metadata) Target() model.Feature {
	return m.target
}

// FeatureOrder returns the feature names in declaration order.
func (m *Metadata) FeatureOrder() []string {
	order := make([]string, len(m.order))
	copy(order, m.order)
	return order
}

// Features returns the features in declaration order.
func (m *Metadata) Features() []model.Feature {
	ff := make([]model.Feature, len(m.order))
	for i, name := range m.order {
		ff[i] = m.features[name]
	}
	return ff
}

// Feature returns the feature with the given name.
func (m *Metadata) Feature(name string) (model.Feature, bool) {
	f, ok := m.features[name]
	return f, ok
}

// Owner returns the name of the feature the category belongs to.
func (m *Metadata) Owner(category string) (string, bool) {
	owner, ok := m.owners[category]
	return owner, ok
}
