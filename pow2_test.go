package sysfont

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
		{128, 128},
		{129, 256},
		{1000, 1024},
		{4097, 8192},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestNextPowerOfTwoProperties(t *testing.T) {
	for n := -3; n <= 1<<14; n++ {
		got := NextPowerOfTwo(n)
		m := max(n, 1)
		if got&(got-1) != 0 {
			t.Fatalf("NextPowerOfTwo(%d) = %d is not a power of two", n, got)
		}
		if got < m || got >= 2*m {
			t.Fatalf("NextPowerOfTwo(%d) = %d, want in [%d, %d)", n, got, m, 2*m)
		}
	}
}

func TestAlignmentFromInt(t *testing.T) {
	tests := []struct {
		v    int
		want Alignment
	}{
		{0, AlignStart},
		{1, AlignCenter},
		{2, AlignEnd},
		{3, AlignStart},
		{-1, AlignStart},
	}
	for _, tt := range tests {
		if got := AlignmentFromInt(tt.v); got != tt.want {
			t.Errorf("AlignmentFromInt(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
