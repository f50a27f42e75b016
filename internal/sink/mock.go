// ABOUTME: Recording sink for tests
// ABOUTME: Captures writes and counts closes without touching a device
package sink

import "sync"

// Mock implements Sink for testing. It records every payload it is
// handed and counts Close calls.
type Mock struct {
	mu       sync.Mutex
	writes   [][]byte
	closes   int
	writeErr error
}

// NewMock creates a recording sink.
func NewMock() *Mock {
	return &Mock{}
}

// Write records a copy of the payload.
func (m *Mock) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	m.writes = append(m.writes, buf)
	return nil
}

// Close counts the call.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// FailWith makes subsequent writes return err.
func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns the recorded payloads in write order.
func (m *Mock) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// CloseCount returns how many times Close was called.
func (m *Mock) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
