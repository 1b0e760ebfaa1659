// ABOUTME: OrderedMap keeps entries in strict insertion order, keyed by comparable types.
// ABOUTME: Insertion order, never key order, drives FIFO eviction, so restored cards with old IDs queue at the back.
package core

import "encoding/json"

// OrderedMap maintains keys in the order Set first saw them. A restored card
// keeps its original ID but re-enters at the back of the queue, which is why
// ordering must follow insertion calls rather than key values.
type OrderedMap[K interface {
	comparable
	String() string
}, V any] struct {
	data map[K]V
	keys []K
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K interface {
	comparable
	String() string
}, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		data: make(map[K]V),
		keys: nil,
	}
}

// Set inserts or updates a key-value pair. New keys go to the back; updating
// an existing key leaves its position unchanged.
func (m *OrderedMap[K, V]) Set(key K, val V) {
	if _, exists := m.data[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.data[key] = val
}

// Get retrieves a value by key. Returns the value and whether it was found.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Delete removes a key-value pair.
func (m *OrderedMap[K, V]) Delete(key K) {
	if _, exists := m.data[key]; !exists {
		return
	}
	delete(m.data, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// PopFront removes and returns the oldest-inserted entry.
// Returns false when the map is empty.
func (m *OrderedMap[K, V]) PopFront() (K, V, bool) {
	var zeroK K
	var zeroV V
	if len(m.keys) == 0 {
		return zeroK, zeroV, false
	}
	k := m.keys[0]
	v := m.data[k]
	m.keys = m.keys[1:]
	delete(m.data, k)
	return k, v, true
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.data)
}

// Keys returns all keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	result := make([]K, len(m.keys))
	copy(result, m.keys)
	return result
}

// Values returns all values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	result := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		result = append(result, m.data[k])
	}
	return result
}

// Range iterates over entries in insertion order. Return false to stop.
func (m *OrderedMap[K, V]) Range(fn func(K, V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.data[k]) {
			break
		}
	}
}

// MarshalJSON serializes the map as a JSON object preserving insertion order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyJSON, err := json.Marshal(k.String())
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(m.data[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyJSON...)
		buf = append(buf, ':')
		buf = append(buf, valJSON...)
	}
	buf = append(buf, '}')
	return buf, nil
}
