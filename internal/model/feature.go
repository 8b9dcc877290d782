package model

// Continuous is the domain token the names file uses for numeric columns.
const Continuous = "continuous"

// Feature is a column of the census schema with its ordered domain.
// The position of a category in the domain is its encoded value.
type Feature struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// NewFeature creates a new feature for the given domain.
// A domain consisting only of the continuous token describes a numeric column.
func NewFeature(name string, categories ...string) Feature {
	if len(categories) == 1 && categories[0] == Continuous {
		categories = nil
	}
	cc := make([]string, len(categories))
	copy(cc, categories)
	return Feature{
		Name:       name,
		Categories: cc,
	}
}

// Numeric returns true if the feature has no categorical domain.
func (f Feature) Numeric() bool {
	return len(f.Categories) == 0
}

// Index returns the code of the given category within the feature domain.
func (f Feature) Index(category string) (int, bool) {
	for i, c := range f.Categories {
		if c == category {
			return i, true
		}
	}
	return -1, false
}

// Category returns the category for the given code.
func (f Feature) Category(index int) (string, bool) {
	if index < 0 || index >= len(f.Categories) {
		return "", false
	}
	return f.Categories[index], true
}
