package calculator

import (
	"math"
	"testing"
)

func TestRollingMax(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	got := RollingMax(values, 3)

	for i := 0; i < 2; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("index %d: expected NaN during warm-up, got %v", i, got[i])
		}
	}
	want := []float64{4, 4, 5, 9, 9, 9}
	for i, w := range want {
		if got[i+2] != w {
			t.Errorf("index %d: expected %v, got %v", i+2, w, got[i+2])
		}
	}
}

func TestRollingMin(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	got := RollingMin(values, 3)

	want := []float64{1, 1, 1, 1, 2, 2}
	for i, w := range want {
		if got[i+2] != w {
			t.Errorf("index %d: expected %v, got %v", i+2, w, got[i+2])
		}
	}
}

func TestRollingMean(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	got := RollingMean(values, 2)

	if !math.IsNaN(got[0]) {
		t.Errorf("expected NaN at index 0, got %v", got[0])
	}
	want := []float64{3, 5, 7}
	for i, w := range want {
		if got[i+1] != w {
			t.Errorf("index %d: expected %v, got %v", i+1, w, got[i+1])
		}
	}
}

func TestRollingWindowOfOne(t *testing.T) {
	values := []float64{5, 3, 8}
	for i, v := range RollingMax(values, 1) {
		if v != values[i] {
			t.Errorf("max window 1 index %d: expected %v, got %v", i, values[i], v)
		}
	}
	for i, v := range RollingMean(values, 1) {
		if v != values[i] {
			t.Errorf("mean window 1 index %d: expected %v, got %v", i, values[i], v)
		}
	}
}

func TestShiftForward(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := ShiftForward(values, 2)

	for i := 0; i < 2; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("index %d: expected NaN, got %v", i, got[i])
		}
	}
	for i := 2; i < len(values); i++ {
		if got[i] != values[i-2] {
			t.Errorf("index %d: expected %v, got %v", i, values[i-2], got[i])
		}
	}
}

func TestShiftBackward(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := ShiftBackward(values, 2)

	for i := 0; i < 3; i++ {
		if got[i] != values[i+2] {
			t.Errorf("index %d: expected %v, got %v", i, values[i+2], got[i])
		}
	}
	for i := 3; i < len(values); i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("index %d: expected NaN, got %v", i, got[i])
		}
	}
}

func TestShiftLargerThanSeries(t *testing.T) {
	values := []float64{1, 2}
	for i, v := range ShiftForward(values, 5) {
		if !math.IsNaN(v) {
			t.Errorf("forward index %d: expected NaN, got %v", i, v)
		}
	}
	for i, v := range ShiftBackward(values, 5) {
		if !math.IsNaN(v) {
			t.Errorf("backward index %d: expected NaN, got %v", i, v)
		}
	}
}

func TestMidpoint(t *testing.T) {
	high := []float64{12, 14, 16}
	low := []float64{8, 10, 12}
	got := Midpoint(high, low, 2)

	if !math.IsNaN(got[0]) {
		t.Errorf("expected NaN at index 0, got %v", got[0])
	}
	// index 1: max(12,14)=14, min(8,10)=8 -> 11
	if got[1] != 11 {
		t.Errorf("index 1: expected 11, got %v", got[1])
	}
	// index 2: max(14,16)=16, min(10,12)=10 -> 13
	if got[2] != 13 {
		t.Errorf("index 2: expected 13, got %v", got[2])
	}
}
