package model

// Encoded is an accepted census row.
// The target code is carried next to the feature vector and never inside it.
type Encoded struct {
	Features []float64 `json:"features"`
	Target   int       `json:"target"`
}

// Outcome is the result of processing a single data line.
type Outcome string

const (
	// Accepted marks a row that decoded successfully.
	Accepted Outcome = "accepted"
	// Rejected marks a row that contained the missing-value marker.
	Rejected Outcome = "rejected"
	// Retained marks an accepted row that made it to the output.
	Retained Outcome = "retained"
)
