package colormap

import (
	"testing"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

var p5 = []string{"#000001", "#000002", "#000003", "#000004", "#000005"}

func TestColorMapFirstMatchWins(t *testing.T) {
	m := New("none")
	m.AddInterval(0, 5, "red")
	m.AddInterval(3, 10, "blue")

	tests := []struct {
		v    float64
		want string
	}{
		{0, "red"},
		{3, "red"},
		{5, "red"},
		{5.5, "blue"},
		{10, "blue"},
		{-0.1, "none"},
		{10.1, "none"},
	}
	for _, tt := range tests {
		if got := m.ColorFor(tt.v); got != tt.want {
			t.Errorf("ColorFor(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestEmptyMapReturnsDefault(t *testing.T) {
	if got := New("#ffffff").ColorFor(42); got != "#ffffff" {
		t.Errorf("got %q", got)
	}
	if got := None().ColorFor(1); got != NoFill {
		t.Errorf("None().ColorFor = %q, want %q", got, NoFill)
	}
}

func TestLinear(t *testing.T) {
	m, err := Linear(0, 10, p5, 5)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}

	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"lower bound", 0, p5[0]},
		{"shared boundary", 2, p5[0]},
		{"second bucket", 3, p5[1]},
		{"middle", 5, p5[2]},
		{"upper bound", 10, p5[4]},
		{"above range", 11, NoFill},
		{"below range", -1, NoFill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ColorFor(tt.v); got != tt.want {
				t.Errorf("ColorFor(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}

	ivs := m.Intervals()
	if len(ivs) != 5 {
		t.Fatalf("got %d intervals, want 5", len(ivs))
	}
	for i := 1; i < len(ivs); i++ {
		if ivs[i].Lower != ivs[i-1].Upper {
			t.Errorf("interval %d not contiguous: %v after %v", i, ivs[i], ivs[i-1])
		}
	}
}

func TestLinearResolutionMismatch(t *testing.T) {
	_, err := Linear(0, 1, p5, 4)
	if !apperrors.Is(err, apperrors.ErrCodeResolutionMismatch) {
		t.Errorf("got %v, want RESOLUTION_MISMATCH", err)
	}
	_, err = Logarithmic(0, 1, p5, 6)
	if !apperrors.Is(err, apperrors.ErrCodeResolutionMismatch) {
		t.Errorf("got %v, want RESOLUTION_MISMATCH", err)
	}
}

func TestLogarithmic(t *testing.T) {
	m, err := Logarithmic(0, 1, p5, 5)
	if err != nil {
		t.Fatalf("Logarithmic: %v", err)
	}

	if got := m.ColorFor(0); got != p5[0] {
		t.Errorf("ColorFor(lo) = %q, want %q", got, p5[0])
	}
	if got := m.ColorFor(1); got != p5[4] {
		t.Errorf("ColorFor(hi) = %q, want %q", got, p5[4])
	}
	if got := m.ColorFor(2); got != NoFill {
		t.Errorf("ColorFor(above) = %q, want %q", got, NoFill)
	}

	// log(11)/log(101) = 0.52, so a tenth of the range already reaches
	// the middle of the palette.
	if got := m.Index(0.1); got != 2 {
		t.Errorf("Index(0.1) = %d, want 2", got)
	}

	prev := 0
	for v := 0.0; v <= 1; v += 0.01 {
		idx := m.Index(v)
		if idx < prev {
			t.Fatalf("Index not monotonic at %v: %d < %d", v, idx, prev)
		}
		prev = idx
	}
}

func TestLogarithmicDegenerateRange(t *testing.T) {
	m, err := Logarithmic(3, 3, p5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ColorFor(3); got != p5[0] {
		t.Errorf("ColorFor = %q, want %q", got, p5[0])
	}
}
