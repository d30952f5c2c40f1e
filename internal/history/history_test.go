package history

import "testing"

func TestEmptyBuffer(t *testing.T) {
	b := New(10)
	if got := b.Values(); got != nil {
		t.Errorf("expected nil from empty buffer, got %d values", len(got))
	}
	if _, ok := b.Last(); ok {
		t.Error("Last on empty buffer should report false")
	}
	if b.Full() {
		t.Error("empty buffer should not be full")
	}
}

func TestPartialFillOrder(t *testing.T) {
	b := New(10)
	for i := 0; i < 5; i++ {
		b.Append(float64(i * 10))
	}

	if b.Full() {
		t.Error("buffer should not be full after 5 of 10 appends")
	}
	got := b.Values()
	if len(got) != 5 {
		t.Fatalf("expected 5 values, got %d", len(got))
	}
	for i := 0; i < 5; i++ {
		if got[i] != float64(i*10) {
			t.Errorf("value %d: expected %v, got %v", i, float64(i*10), got[i])
		}
	}
}

func TestFillToCapacityLatchesFull(t *testing.T) {
	b := New(4)
	for i := 0; i < 4; i++ {
		if b.Full() {
			t.Fatalf("full before append %d", i)
		}
		b.Append(float64(i))
	}
	if !b.Full() {
		t.Error("buffer should be full after capacity appends")
	}

	got := b.Values()
	if len(got) != 4 {
		t.Fatalf("expected 4 values, got %d", len(got))
	}
	for i := 0; i < 4; i++ {
		if got[i] != float64(i) {
			t.Errorf("value %d: expected %v, got %v", i, float64(i), got[i])
		}
	}
}

func TestOverwriteKeepsNewestOldestFirst(t *testing.T) {
	b := New(5)
	// Append 8 values (0..7); buffer should keep the most recent 5 (3..7).
	for i := 0; i < 8; i++ {
		b.Append(float64(i))
	}

	got := b.Values()
	if len(got) != 5 {
		t.Fatalf("expected 5 values, got %d", len(got))
	}
	for i := 0; i < 5; i++ {
		want := float64(i + 3)
		if got[i] != want {
			t.Errorf("value %d: expected %v, got %v", i, want, got[i])
		}
	}
	if !b.Full() {
		t.Error("buffer should remain full after overwrites")
	}
}

func TestFullNeverReverts(t *testing.T) {
	b := New(3)
	for i := 0; i < 10; i++ {
		b.Append(1)
		if i >= 2 && !b.Full() {
			t.Fatalf("full flag reverted after append %d", i)
		}
	}
}

func TestAppendClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{150, 100},
		{42.3, 42.3},
		{0, 0},
		{100, 100},
	}
	for _, tt := range tests {
		b := New(4)
		b.Append(tt.in)
		got, ok := b.Last()
		if !ok {
			t.Fatalf("Last after Append(%v): no value", tt.in)
		}
		if got != tt.want {
			t.Errorf("Append(%v): stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLastTracksCursor(t *testing.T) {
	b := New(3)
	for i := 0; i < 7; i++ {
		b.Append(float64(i))
		got, ok := b.Last()
		if !ok || got != float64(i) {
			t.Errorf("after append %d: Last = %v, %v", i, got, ok)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 100); got != 0 {
		t.Errorf("Clamp(-1) = %v, want 0", got)
	}
	if got := Clamp(101, 0, 100); got != 100 {
		t.Errorf("Clamp(101) = %v, want 100", got)
	}
	if got := Clamp(55.5, 0, 100); got != 55.5 {
		t.Errorf("Clamp(55.5) = %v, want 55.5", got)
	}
}
