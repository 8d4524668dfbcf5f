package maze

import (
	"testing"
)

func countPassages(grid [][]bool) int {
	n := 0
	for _, row := range grid {
		for _, c := range row {
			if c == Passage {
				n++
			}
		}
	}
	return n
}

func TestGenerateDimensions(t *testing.T) {
	res := Generate(Config{Width: 20, Height: 10, Seed: 1})
	if len(res.Grid) != 9 || len(res.Grid[0]) != 19 {
		t.Errorf("Expected 19x9 grid after rounding down to odd, got %dx%d", len(res.Grid[0]), len(res.Grid))
	}

	small := Generate(Config{Width: 1, Height: 1, Seed: 1})
	if len(small.Grid) != 3 || len(small.Grid[0]) != 3 {
		t.Errorf("Expected minimum 3x3 grid, got %dx%d", len(small.Grid[0]), len(small.Grid))
	}
}

func TestGeneratePerfectMaze(t *testing.T) {
	res := Generate(Config{Width: 31, Height: 21, Seed: 99})
	rooms := 15 * 10

	carves, retreats := 0, 0
	for _, s := range res.Steps {
		switch s.Kind {
		case StepCarve:
			carves++
		case StepRetreat:
			retreats++
		case StepBraid:
			t.Error("Expected no braid steps without braiding")
		}
	}
	if carves != rooms || retreats != rooms {
		t.Errorf("Expected %d carves and retreats, got %d and %d", rooms, carves, retreats)
	}

	// A spanning tree over the rooms opens rooms-1 walls
	if got := countPassages(res.Grid); got != 2*rooms-1 {
		t.Errorf("Expected %d passage cells, got %d", 2*rooms-1, got)
	}

	// Border stays solid
	for x := range res.Grid[0] {
		if res.Grid[0][x] != Wall || res.Grid[len(res.Grid)-1][x] != Wall {
			t.Fatalf("Expected border wall at column %d", x)
		}
	}

	first, last := res.Steps[0], res.Steps[len(res.Steps)-1]
	if first.Kind != StepCarve || first.Cell != res.Start || first.Wall != res.Start {
		t.Errorf("Expected first step to carve the start, got %+v", first)
	}
	if last.Kind != StepRetreat || last.Cell != res.Start || last.Wall != res.Start {
		t.Errorf("Expected last step to retreat from the start, got %+v", last)
	}
}

func TestGenerateDeterministicSeed(t *testing.T) {
	a := Generate(Config{Width: 25, Height: 25, Seed: 1234})
	b := Generate(Config{Width: 25, Height: 25, Seed: 1234})
	if len(a.Steps) != len(b.Steps) {
		t.Fatalf("Expected identical step counts, got %d and %d", len(a.Steps), len(b.Steps))
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] {
			t.Fatalf("Step %d differs: %+v vs %+v", i, a.Steps[i], b.Steps[i])
		}
	}
}

func TestSolutionPath(t *testing.T) {
	res := Generate(Config{Width: 41, Height: 41, Seed: 5, Braiding: 0.5})
	path := res.SolutionPath
	if len(path) == 0 {
		t.Fatal("Expected a solution path")
	}
	if path[0] != res.Start || path[len(path)-1] != res.End {
		t.Errorf("Expected path from %v to %v, got %v to %v", res.Start, res.End, path[0], path[len(path)-1])
	}
	for i := 1; i < len(path); i++ {
		dx, dy := path[i].X-path[i-1].X, path[i].Y-path[i-1].Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("Expected adjacent cells at %d: %v -> %v", i, path[i-1], path[i])
		}
		if res.Grid[path[i].Y][path[i].X] != Passage {
			t.Fatalf("Path crosses a wall at %v", path[i])
		}
	}
}

func TestResolveRoomSnapsToOdd(t *testing.T) {
	p := resolveRoom(11, 11, &Point{4, 100}, 1, 1)
	if p != (Point{5, 9}) {
		t.Errorf("Expected (5,9), got %v", p)
	}
	p = resolveRoom(11, 11, &Point{-3, 0}, 1, 1)
	if p != (Point{1, 1}) {
		t.Errorf("Expected (1,1), got %v", p)
	}
}
