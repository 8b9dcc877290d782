package json

import (
	"path/filepath"

	"github.com/drakos74/free-census/internal/storage"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores every key as its own json file under <root>/<table>/<shard>.
type BlobStorage struct {
	dir string
}

// BlobShard creates a blob storage generator for the given table.
func BlobShard(table string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(table, shard), nil
	}
}

// NewJsonBlob creates a blob storage for the given table and shard under the default dir.
func NewJsonBlob(table, shard string) *BlobStorage {
	return &BlobStorage{
		dir: filepath.Join(storage.DefaultDir, table, shard),
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	if err := Save(s.dir, k.Path(), value); err != nil {
		return err
	}
	log.Debug().Str("path", s.dir).Str("file", k.Path()).Msg("stored json file")
	return nil
}
