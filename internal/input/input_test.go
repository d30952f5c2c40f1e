package input

import (
	"errors"
	"testing"
)

func TestEdgeDownOnly(t *testing.T) {
	samples := []bool{false, true, true, true, false, false, true, false}
	wantEdges := []bool{false, true, false, false, false, false, true, false}

	var e Edge
	for i, s := range samples {
		if got := e.Update(s); got != wantEdges[i] {
			t.Errorf("sample %d (%v): edge = %v, want %v", i, s, got, wantEdges[i])
		}
	}
}

func TestEdgeHeldTouchDoesNotRepeat(t *testing.T) {
	var e Edge
	if !e.Update(true) {
		t.Fatal("first touch should be a down edge")
	}
	for i := 0; i < 10; i++ {
		if e.Update(true) {
			t.Fatalf("held touch repeated edge at sample %d", i)
		}
	}
}

func TestFakeSamplerSequence(t *testing.T) {
	f := NewFakeSampler([]bool{false, true})

	for i, want := range []bool{false, true, true, true} {
		got, err := f.Touched()
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
		if got != want {
			t.Errorf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestFakeSamplerError(t *testing.T) {
	f := NewFakeSampler(nil)
	f.ReadError = errors.New("boom")
	if _, err := f.Touched(); err == nil {
		t.Error("expected configured error")
	}
}
