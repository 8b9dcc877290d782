package storage

const (
	ReportDir = "census"
)

var (
	// DefaultDir is the root of all json storage, tests point it at a temp dir.
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// Key is the storage key of a conversion run.
type Key struct {
	Run string `json:"run"`
}

// Path returns the file name for the key.
func (k Key) Path() string {
	return k.Run
}

// Persistence stores values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
}
