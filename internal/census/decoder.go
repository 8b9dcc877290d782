package census

import (
	"fmt"
	"strconv"

	"github.com/drakos74/free-census/internal/model"
)

// DefaultMissing is the token the census data uses for unobserved values.
const DefaultMissing = "?"

// Decoder turns raw census rows into encoded rows.
type Decoder struct {
	meta    *Metadata
	missing string
}

// NewDecoder creates a new decoder for the given metadata.
// The missing-value marker is normalized like the data fields it is compared to.
func NewDecoder(meta *Metadata, missing string) *Decoder {
	missing = Normalize(missing)
	if missing == "" {
		missing = DefaultMissing
	}
	return &Decoder{
		meta:    meta,
		missing: missing,
	}
}

// Classify decides what the given normalized field represents.
func (d *Decoder) Classify(field string) (model.Field, error) {
	if field == d.missing {
		return model.Missing(), nil
	}
	if owner, ok := d.meta.Owner(field); ok {
		feature, _ := d.meta.Feature(owner)
		index, _ := feature.Index(field)
		return model.Category(owner, index), nil
	}
	if index, ok := d.meta.Target().Index(field); ok {
		return model.Target(index), nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return model.Field{}, fmt.Errorf("'%s' is neither a known category nor a number: %w", field, InvalidNumberErr)
	}
	return model.Numeric(v), nil
}

// Decode encodes the given row.
// It returns false if any of the fields is the missing-value marker, no matter its position.
func (d *Decoder) Decode(fields []string) (model.Encoded, bool, error) {
	for _, field := range fields {
		if field == d.missing {
			return model.Encoded{}, false, nil
		}
	}

	encoded := model.Encoded{
		Features: make([]float64, 0, len(fields)),
		Target:   -1,
	}
	for i, field := range fields {
		f, err := d.Classify(field)
		if err != nil {
			return model.Encoded{}, false, fmt.Errorf("field %d: %w", i, err)
		}
		switch f.Kind {
		case model.MissingField:
			return model.Encoded{}, false, nil
		case model.CategoryField, model.NumericField:
			encoded.Features = append(encoded.Features, f.Value)
		case model.TargetField:
			if encoded.Target >= 0 {
				return model.Encoded{}, false, fmt.Errorf("field %d: second target value '%s': %w", i, field, DuplicateTargetErr)
			}
			encoded.Target = f.Index
		default:
			return model.Encoded{}, false, fmt.Errorf("field %d: unknown kind %v", i, f.Kind)
		}
	}
	if encoded.Target < 0 {
		return model.Encoded{}, false, fmt.Errorf("no value of '%s' in row: %w", d.meta.Target().Name, MissingTargetErr)
	}
	return encoded, true, nil
}

// DecodeLine splits the raw data line and decodes it.
func (d *Decoder) DecodeLine(line string) (model.Encoded, bool, error) {
	return d.Decode(Split(line))
}
