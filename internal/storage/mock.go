package storage

// MockShard returns the same in-memory storage for every shard.
func MockShard(m *MockStorage) Shard {
	return func(shard string) (Persistence, error) {
		return m, nil
	}
}

// MockStorage keeps the stored values in memory.
type MockStorage struct {
	Elements map[Key]interface{}
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Elements: make(map[Key]interface{})}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.Elements[k] = value
	return nil
}
