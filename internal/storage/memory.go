package storage

// MemoryBlobs is an in-memory Blobs implementation. It backs tests and
// the degraded mode the game falls into when the real store is broken.
// FailWrites and FailReads force the corresponding errors so failure
// paths can be exercised.
type MemoryBlobs struct {
	data       map[string][]byte
	FailWrites bool
	FailReads  bool
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: make(map[string][]byte)}
}

func (m *MemoryBlobs) Load(key string) ([]byte, error) {
	if m.FailReads {
		return nil, ErrUnavailable
	}
	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryBlobs) Save(key string, value []byte) error {
	if m.FailWrites {
		return ErrUnavailable
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemoryBlobs) Remove(key string) error {
	if m.FailWrites {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}
