package contribution

import "testing"

func TestLevel_Buckets(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{5, 2},
		{6, 3},
		{10, 3},
		{11, 4},
		{1000, 4},
	}
	for _, tc := range cases {
		if got := Level(tc.count); got != tc.want {
			t.Errorf("Level(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func TestLevel_Monotone(t *testing.T) {
	prev := Level(0)
	for count := 1; count <= 50; count++ {
		level := Level(count)
		if level < prev {
			t.Fatalf("Level(%d) = %d dropped below Level(%d) = %d", count, level, count-1, prev)
		}
		prev = level
	}
}
