// ABOUTME: Tests for the sink package
// ABOUTME: Verifies interface compliance, mock recording, and volume scaling
package sink

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeviceImplementsSink(t *testing.T) {
	var _ Sink = (*Device)(nil)
}

func TestMockImplementsSink(t *testing.T) {
	var _ Sink = (*Mock)(nil)
}

func TestMockRecordsWrites(t *testing.T) {
	m := NewMock()

	payloads := [][]byte{
		{0x00, 0x01, 0x00, 0x01},
		{0xFF, 0x7F},
		{0x01},
	}

	for _, p := range payloads {
		if err := m.Write(p); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	writes := m.Writes()
	if len(writes) != len(payloads) {
		t.Fatalf("expected %d writes, got %d", len(payloads), len(writes))
	}

	for i, p := range payloads {
		if !bytes.Equal(writes[i], p) {
			t.Errorf("write %d: expected %v, got %v", i, p, writes[i])
		}
	}
}

func TestMockCopiesPayload(t *testing.T) {
	m := NewMock()

	buf := []byte{1, 2, 3, 4}
	if err := m.Write(buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Mutating the caller's buffer must not affect the recorded payload.
	buf[0] = 9

	if m.Writes()[0][0] != 1 {
		t.Error("mock should record a copy, not the caller's buffer")
	}
}

func TestMockFailWith(t *testing.T) {
	m := NewMock()
	wantErr := errors.New("device gone")
	m.FailWith(wantErr)

	if err := m.Write([]byte{0, 0}); !errors.Is(err, wantErr) {
		t.Errorf("expected injected error, got %v", err)
	}

	if len(m.Writes()) != 0 {
		t.Error("failed write should not be recorded")
	}
}

func TestMockCloseCount(t *testing.T) {
	m := NewMock()

	if m.CloseCount() != 0 {
		t.Errorf("expected 0 closes, got %d", m.CloseCount())
	}

	m.Close()
	m.Close()

	if m.CloseCount() != 2 {
		t.Errorf("expected 2 closes, got %d", m.CloseCount())
	}
}

func TestApplyVolumeFullScalePassThrough(t *testing.T) {
	data := []byte{0x34, 0x12, 0xCD, 0xAB}

	out := applyVolume(data, 100, false)
	if !bytes.Equal(out, data) {
		t.Errorf("volume 100 should not change samples: %v vs %v", out, data)
	}
}

func TestApplyVolumeMuted(t *testing.T) {
	data := []byte{0x34, 0x12, 0xCD, 0xAB}

	out := applyVolume(data, 100, true)
	for i, b := range out {
		if b != 0 {
			t.Errorf("muted output byte %d should be 0, got %#x", i, b)
		}
	}
}

func TestApplyVolumeHalf(t *testing.T) {
	// 0x2000 = 8192; half is 4096 = 0x1000.
	data := []byte{0x00, 0x20}

	out := applyVolume(data, 50, false)
	if out[0] != 0x00 || out[1] != 0x10 {
		t.Errorf("expected 0x1000, got %#x%02x", out[1], out[0])
	}
}

func TestApplyVolumePreservesTrailingByte(t *testing.T) {
	// 5 bytes: two whole samples plus a dangling byte.
	data := []byte{0x00, 0x20, 0x00, 0x20, 0x7F}

	out := applyVolume(data, 50, false)
	if len(out) != len(data) {
		t.Fatalf("length changed: %d vs %d", len(out), len(data))
	}
	if out[4] != 0x7F {
		t.Errorf("trailing byte should pass through, got %#x", out[4])
	}
}

func TestGetVolumeMultiplier(t *testing.T) {
	if getVolumeMultiplier(100, false) != 1.0 {
		t.Error("expected multiplier 1.0 at full volume")
	}
	if getVolumeMultiplier(0, false) != 0.0 {
		t.Error("expected multiplier 0.0 at zero volume")
	}
	if getVolumeMultiplier(100, true) != 0.0 {
		t.Error("expected multiplier 0.0 when muted")
	}
	if getVolumeMultiplier(50, false) != 0.5 {
		t.Error("expected multiplier 0.5 at half volume")
	}
}
