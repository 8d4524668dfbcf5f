package gif

import "testing"

func TestCanvasStartsClean(t *testing.T) {
	c := NewCanvas(5, 3)
	if _, ok := c.Dirty(); ok {
		t.Error("Expected no dirty region on a new canvas")
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if c.At(x, y) != 0 {
				t.Errorf("Expected index 0 at (%d, %d), got %d", x, y, c.At(x, y))
			}
		}
	}
}

func TestCanvasSameValueKeepsClean(t *testing.T) {
	c := NewCanvas(4, 4)
	c.set(1, 1, 0)
	c.fill(c.Bounds(), 0)
	if _, ok := c.Dirty(); ok {
		t.Error("Expected unchanged writes to leave dirty region absent")
	}
}

func TestCanvasDirtyGrows(t *testing.T) {
	c := NewCanvas(10, 10)

	c.set(4, 5, 1)
	if d, ok := c.Dirty(); !ok || d != (Rect{4, 5, 4, 5}) {
		t.Fatalf("Expected single point dirty region, got %+v (ok=%v)", d, ok)
	}

	c.set(2, 7, 1)
	c.set(6, 1, 2)
	want := Rect{2, 1, 6, 7}
	if d, _ := c.Dirty(); d != want {
		t.Errorf("Expected %+v, got %+v", want, d)
	}

	// Growth is per axis and never shrinks
	c.set(3, 3, 1)
	if d, _ := c.Dirty(); d != want {
		t.Errorf("Expected dirty region to stay %+v, got %+v", want, d)
	}
}

func TestCanvasSettleNarrowsToNetChanges(t *testing.T) {
	c := NewCanvas(10, 10)
	c.set(0, 0, 1)
	c.set(9, 9, 1)
	c.set(5, 5, 2)
	c.set(0, 0, 0)
	c.set(9, 9, 0)

	r, ok := c.settle()
	if !ok {
		t.Fatal("Expected a net change")
	}
	if r != (Rect{5, 5, 5, 5}) {
		t.Errorf("Expected settle to narrow to (5,5), got %+v", r)
	}
}

func TestCanvasSettleRevertedIsClean(t *testing.T) {
	c := NewCanvas(3, 3)
	c.set(1, 1, 2)
	c.set(1, 1, 0)
	if _, ok := c.settle(); ok {
		t.Error("Expected a reverted cell to produce no change")
	}
	if _, ok := c.Dirty(); ok {
		t.Error("Expected settle to clear an empty dirty region")
	}
}

func TestCanvasCommit(t *testing.T) {
	c := NewCanvas(4, 4)
	c.fill(Rect{1, 1, 2, 2}, 3)
	c.commit()

	if _, ok := c.Dirty(); ok {
		t.Error("Expected commit to clear the dirty region")
	}

	// A change reverted before the next commit is not a net change
	c.set(1, 1, 0)
	c.set(1, 1, 3)
	if _, ok := c.settle(); ok {
		t.Error("Expected no net change after restoring committed value")
	}
}

func TestCanvasRegion(t *testing.T) {
	c := NewCanvas(3, 2)
	c.set(0, 0, 1)
	c.set(2, 0, 2)
	c.set(1, 1, 3)

	got := c.region(c.Bounds())
	want := []uint8{1, 0, 2, 0, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected row-major %v, got %v", want, got)
		}
	}
}
