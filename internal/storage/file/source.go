package file

import (
	"fmt"
	"os"
	"strings"
)

// Lines reads the whole file into memory and returns its non-blank lines.
// The returned numbers are the 1-based line positions in the file.
func Lines(path string) ([]string, []int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read file '%s': %w", path, err)
	}

	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	numbers := make([]int, 0, len(raw))
	for i, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		numbers = append(numbers, i+1)
	}
	return lines, numbers, nil
}
