package mandelbrot

import (
	"errors"
	"testing"
)

// checkPartition verifies that plan covers [0, height) contiguously.
func checkPartition(t *testing.T, plan []StripRange, height int) {
	t.Helper()
	next := 0
	for i, r := range plan {
		if r.Start != next {
			t.Fatalf("strip %d starts at %d, want %d (plan %v)", i, r.Start, next, plan)
		}
		if r.End < r.Start {
			t.Fatalf("strip %d is inverted: %v", i, r)
		}
		next = r.End
	}
	if next != height {
		t.Fatalf("plan ends at %d, want %d (plan %v)", next, height, plan)
	}
}

func TestPlan_Examples(t *testing.T) {
	tests := []struct {
		name    string
		height  int
		workers int
		want    []StripRange
	}{
		{
			name: "even split", height: 600, workers: 5,
			want: []StripRange{{0, 120}, {120, 240}, {240, 360}, {360, 480}, {480, 600}},
		},
		{
			name: "remainder goes to last strip", height: 10, workers: 3,
			want: []StripRange{{0, 3}, {3, 6}, {6, 10}},
		},
		{
			name: "single worker", height: 7, workers: 1,
			want: []StripRange{{0, 7}},
		},
		{
			name: "more workers than rows", height: 3, workers: 5,
			want: []StripRange{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 3}},
		},
		{
			name: "zero height", height: 0, workers: 2,
			want: []StripRange{{0, 0}, {0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.height, tt.workers)
			if len(got) != len(tt.want) {
				t.Fatalf("Plan(%d, %d) = %v, want %v", tt.height, tt.workers, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Plan(%d, %d)[%d] = %v, want %v", tt.height, tt.workers, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlan_CoversHeightForAllCounts(t *testing.T) {
	for height := 1; height <= 64; height++ {
		for workers := 1; workers <= MaxWorkers; workers++ {
			plan := Plan(height, workers)
			if len(plan) != workers {
				t.Fatalf("Plan(%d, %d) has %d strips, want %d", height, workers, len(plan), workers)
			}
			checkPartition(t, plan, height)
		}
	}
}

func TestPlan_EmptyStripsWhenOversubscribed(t *testing.T) {
	plan := Plan(4, 16)
	empty := 0
	for _, r := range plan {
		if r.Empty() {
			empty++
		}
	}
	if empty != 15 {
		t.Errorf("Plan(4, 16) has %d empty strips, want 15", empty)
	}
	checkPartition(t, plan, 4)
}

func TestPlan_ClampsWorkers(t *testing.T) {
	for _, workers := range []int{0, -1, -100} {
		plan := Plan(10, workers)
		if len(plan) != 1 || plan[0] != (StripRange{0, 10}) {
			t.Errorf("Plan(10, %d) = %v, want [[0,10)]", workers, plan)
		}
	}
}

func TestPlan_NegativeHeight(t *testing.T) {
	plan := Plan(-5, 2)
	checkPartition(t, plan, 0)
}

func TestStripRange(t *testing.T) {
	r := StripRange{Start: 3, End: 7}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if r.Empty() {
		t.Error("Empty() = true, want false")
	}
	if !r.Contains(3) || !r.Contains(6) || r.Contains(7) || r.Contains(2) {
		t.Error("Contains() does not match half-open range")
	}
	if r.String() != "[3,7)" {
		t.Errorf("String() = %q, want [3,7)", r.String())
	}
	if !(StripRange{5, 5}).Empty() {
		t.Error("zero-length range should be empty")
	}
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name   string
		plan   []StripRange
		height int
		ok     bool
	}{
		{name: "valid", plan: []StripRange{{0, 2}, {2, 4}}, height: 4, ok: true},
		{name: "gap", plan: []StripRange{{0, 2}, {3, 4}}, height: 4},
		{name: "overlap", plan: []StripRange{{0, 3}, {2, 4}}, height: 4},
		{name: "short", plan: []StripRange{{0, 2}}, height: 4},
		{name: "too long", plan: []StripRange{{0, 5}}, height: 4},
		{name: "inverted", plan: []StripRange{{0, 3}, {3, 1}, {1, 4}}, height: 4},
		{name: "out of order", plan: []StripRange{{2, 4}, {0, 2}}, height: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePlan(tt.plan, tt.height)
			if tt.ok && err != nil {
				t.Errorf("validatePlan() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("validatePlan() = %v, want ErrInvalidPlan", err)
			}
		})
	}
}
