package fuzzy

import "fmt"

// Peak places the plateau [X2, X3] of Fn within a chain built by
// DefineInputsByPeaks.
type Peak struct {
	Fn     *Membership
	X2, X3 float64
}

// DefineInputsByPeaks sets the boundaries of each peak's membership so that
// every ramp ends where its neighbour's plateau begins: x1 is the previous
// peak's X3 (startValley for the first) and x4 is the next peak's X2
// (endValley for the last). It returns the memberships in peak order.
//
// The chain is checked before any membership is modified. Each peak must
// have X2 <= X3 and start no earlier than the previous plateau ends, the
// first peak must not start before startValley and the last must end no
// later than endValley.
func DefineInputsByPeaks(startValley float64, peaks []Peak, endValley float64) ([]*Membership, error) {
	if err := checkPeaks(startValley, peaks, endValley); err != nil {
		return nil, err
	}

	fns := make([]*Membership, len(peaks))
	for i, p := range peaks {
		x1 := startValley
		if i > 0 {
			x1 = peaks[i-1].X3
		}
		x4 := endValley
		if i < len(peaks)-1 {
			x4 = peaks[i+1].X2
		}
		p.Fn.setBounds(x1, p.X2, p.X3, x4)
		fns[i] = p.Fn
	}
	return fns, nil
}

func checkPeaks(startValley float64, peaks []Peak, endValley float64) error {
	prev := startValley
	for i, p := range peaks {
		if p.Fn == nil {
			return fmt.Errorf("peak %d: nil membership: %w", i, ErrUnorderedPeaks)
		}
		if p.X2 > p.X3 {
			return fmt.Errorf("peak %d: x2 %g > x3 %g: %w", i, p.X2, p.X3, ErrUnorderedPeaks)
		}
		if p.X2 < prev {
			return fmt.Errorf("peak %d: x2 %g before %g: %w", i, p.X2, prev, ErrUnorderedPeaks)
		}
		prev = p.X3
	}
	if prev > endValley {
		return fmt.Errorf("last peak ends at %g after end valley %g: %w", prev, endValley, ErrUnorderedPeaks)
	}
	return nil
}
