package bits

import "testing"

func TestIntN(t *testing.T) {
	tests := []struct {
		x    uint64
		n    uint
		want int64
	}{
		{0b011, 3, 3},
		{0b010, 3, 2},
		{0b001, 3, 1},
		{0b000, 3, 0},
		{0b111, 3, -1},
		{0b110, 3, -2},
		{0b101, 3, -3},
		{0b100, 3, -4},
	}
	for _, test := range tests {
		got := IntN(test.x, test.n)
		if got != test.want {
			t.Errorf("IntN(%#b, %d) = %d, want %d", test.x, test.n, got, test.want)
		}
	}
}
