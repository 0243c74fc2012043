// Package calculator provides the rolling-window primitives shared by the
// indicator engines. All functions return a slice aligned with the input;
// positions without enough trailing history hold NaN. Periods must be
// positive; engine constructors validate configuration before calling in.
package calculator

import "math"

// RollingMax returns the trailing maximum over period values, inclusive of
// the current position. Monotonic-deque scan, O(n).
func RollingMax(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	var deque []int // indices, values decreasing
	for i, v := range values {
		for len(deque) > 0 && values[deque[len(deque)-1]] <= v {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		if deque[0] <= i-period {
			deque = deque[1:]
		}
		if i >= period-1 {
			out[i] = values[deque[0]]
		}
	}
	return out
}

// RollingMin returns the trailing minimum over period values.
func RollingMin(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	var deque []int // indices, values increasing
	for i, v := range values {
		for len(deque) > 0 && values[deque[len(deque)-1]] >= v {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		if deque[0] <= i-period {
			deque = deque[1:]
		}
		if i >= period-1 {
			out[i] = values[deque[0]]
		}
	}
	return out
}

// RollingMean returns the trailing simple mean over period values.
func RollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// Midpoint returns (trailing max of high + trailing min of low) / 2 over the
// given period, the midpoint-of-extrema line Ichimoku is built from.
func Midpoint(high, low []float64, period int) []float64 {
	maxes := RollingMax(high, period)
	mins := RollingMin(low, period)
	out := make([]float64, len(high))
	for i := range out {
		out[i] = (maxes[i] + mins[i]) / 2
	}
	return out
}

// ShiftForward displaces a series n positions into the future:
// out[i] = values[i-n]. The first n positions have no source and hold NaN.
func ShiftForward(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := n; i < len(values); i++ {
		out[i] = values[i-n]
	}
	return out
}

// ShiftBackward displaces a series n positions into the past:
// out[i] = values[i+n]. The last n positions have no source and hold NaN.
func ShiftBackward(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := 0; i+n < len(values); i++ {
		out[i] = values[i+n]
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
