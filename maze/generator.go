package maze

import (
	"math/rand"
	"time"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

type Point struct {
	X, Y int
}

// midpoint returns the wall cell between two rooms two cells apart
func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

type Config struct {
	Width, Height int

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Higher values add cycles. Constraints (No Plazas/Pillars) take precedence.
	Braiding float64

	StartPos *Point // Optional (nil = (1,1))
	EndPos   *Point // Optional (nil = opposite corner)
	Seed     int64  // Optional (0 = Random)
}

// StepKind classifies a recorded generation step
type StepKind uint8

const (
	// StepCarve opens a new room and the wall leading to it
	StepCarve StepKind = iota
	// StepRetreat leaves a dead end, closing the room and the wall back to its parent
	StepRetreat
	// StepBraid removes a single wall to form a loop
	StepBraid
)

// Step is one observable change made while generating.
// For the first carve and the final retreat Wall equals Cell.
type Step struct {
	Kind StepKind
	Cell Point
	Wall Point
}

type Result struct {
	Grid         [][]bool
	Start, End   Point
	SolutionPath []Point
	Steps        []Step
}

// Generate creates a stochastic topological maze and records the order in
// which cells were carved so the process can be replayed.
func Generate(cfg Config) Result {
	// 1. Setup Topology
	// We round DOWN to the nearest odd number to stay within requested bounds.
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	// 2. Initialize Grid (Filled with Walls)
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
		for j := range grid[i] {
			grid[i][j] = Wall
		}
	}

	// 3. RNG Setup
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 4. Resolve Start/End; rooms live on odd coordinates
	start := resolveRoom(rows, cols, cfg.StartPos, 1, 1)
	end := resolveRoom(rows, cols, cfg.EndPos, cols-2, rows-2)

	// 5. Core Generation (Recursive Backtracker)
	steps := recursiveBacktracker(grid, start, rng)

	// 6. Apply Braiding (Homological Complexity)
	if cfg.Braiding > 0 {
		steps = applySmartBraiding(grid, cfg.Braiding, rng, steps)
	}

	// 7. Calculate Solution Path (BFS)
	path := solveBFS(grid, start, end)

	return Result{
		Grid:         grid,
		Start:        start,
		End:          end,
		SolutionPath: path,
		Steps:        steps,
	}
}

// --- Core Algorithms ---

// recursiveBacktracker carves a uniform spanning tree over the odd rooms.
// Every push is a StepCarve and every pop a StepRetreat, so replaying the
// steps shows the active branch growing and collapsing.
func recursiveBacktracker(grid [][]bool, start Point, rng *rand.Rand) []Step {
	rows, cols := len(grid), len(grid[0])

	stack := []Point{start}
	grid[start.Y][start.X] = Passage
	steps := []Step{{Kind: StepCarve, Cell: start, Wall: start}}

	dirs := []Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Check Bounds (Leave 1 cell border for walls)
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
				if grid[ny][nx] == Wall {
					candidates = append(candidates, d)
				}
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			next := Point{curr.X + d.X, curr.Y + d.Y}
			wall := midpoint(curr, next)

			grid[wall.Y][wall.X] = Passage
			grid[next.Y][next.X] = Passage

			stack = append(stack, next)
			steps = append(steps, Step{Kind: StepCarve, Cell: next, Wall: wall})
		} else {
			stack = stack[:len(stack)-1]
			wall := curr
			if len(stack) > 0 {
				wall = midpoint(curr, stack[len(stack)-1])
			}
			steps = append(steps, Step{Kind: StepRetreat, Cell: curr, Wall: wall})
		}
	}
	return steps
}

func applySmartBraiding(grid [][]bool, probability float64, rng *rand.Rand, steps []Step) []Step {
	rows, cols := len(grid), len(grid[0])

	// Iterate over odd nodes (Rooms)
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == Wall {
				continue
			}

			// 1. Identify Dead End
			// A node is a dead end if it has exactly 1 Passage neighbor.
			exits := 0
			checkDirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
			for _, d := range checkDirs {
				if grid[y+d.Y][x+d.X] == Passage {
					exits++
				}
			}

			if exits == 1 && rng.Float64() < probability {
				// 2. Find valid walls to remove to create a loop
				candidates := make([]Point, 0, 4)

				jumpDirs := []Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
				for _, jd := range jumpDirs {
					nx, ny := x+jd.X, y+jd.Y     // Target Neighbor
					wx, wy := x+jd.X/2, y+jd.Y/2 // The intervening Wall

					if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
						if grid[ny][nx] == Passage && grid[wy][wx] == Wall {
							// 3. TOPOLOGY CHECK: Plazas & Pillars
							if canSafelyRemoveWall(grid, wx, wy) {
								candidates = append(candidates, Point{wx, wy})
							}
						}
					}
				}

				if len(candidates) > 0 {
					c := candidates[rng.Intn(len(candidates))]
					grid[c.Y][c.X] = Passage
					steps = append(steps, Step{Kind: StepBraid, Cell: c, Wall: c})
				}
			}
		}
	}
	return steps
}

// canSafelyRemoveWall checks if removing grid[y][x] creates prohibited topology:
// 1. Plazas (2x2 Passages).
// 2. Pillars (Isolated Walls).
func canSafelyRemoveWall(grid [][]bool, x, y int) bool {
	rows, cols := len(grid), len(grid[0])

	isP := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return grid[ty][tx] == Passage
	}

	// No Plazas: check the four quadrants around (x,y)
	if isP(x-1, y-1) && isP(x, y-1) && isP(x-1, y) {
		return false
	}
	if isP(x, y-1) && isP(x+1, y-1) && isP(x+1, y) {
		return false
	}
	if isP(x-1, y) && isP(x-1, y+1) && isP(x, y+1) {
		return false
	}
	if isP(x+1, y) && isP(x, y+1) && isP(x+1, y+1) {
		return false
	}

	// No Pillars: each orthogonal wall neighbor must keep another wall connection
	ortho := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || grid[ny][nx] != Wall {
			continue
		}
		wallConnections := 0
		for _, d2 := range ortho {
			nnx, nny := nx+d2.X, ny+d2.Y
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && grid[nny][nnx] == Wall {
				wallConnections++
			}
		}
		if wallConnections == 0 {
			return false
		}
	}

	return true
}

// --- Helpers ---

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1 // Round down to stay within bounds
	}
	return n
}

// resolveRoom clamps p into the interior and snaps it to odd coordinates
func resolveRoom(h, w int, p *Point, defX, defY int) Point {
	if p == nil {
		return Point{defX, defY}
	}
	snap := func(v, limit int) int {
		v = max(1, min(v, limit-2))
		return v | 1
	}
	return Point{snap(p.X, w), snap(p.Y, h)}
}

func solveBFS(grid [][]bool, start, end Point) []Point {
	rows, cols := len(grid), len(grid[0])
	if grid[start.Y][start.X] == Wall || grid[end.Y][end.X] == Wall {
		return nil
	}

	queue := []Point{start}
	cameFrom := make(map[Point]Point)
	visited := make(map[Point]bool)
	visited[start] = true

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			// Reconstruct Path
			path := []Point{}
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		dirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
		for _, d := range dirs {
			next := Point{curr.X + d.X, curr.Y + d.Y}
			if next.X >= 0 && next.X < cols && next.Y >= 0 && next.Y < rows {
				if grid[next.Y][next.X] == Passage && !visited[next] {
					visited[next] = true
					cameFrom[next] = curr
					queue = append(queue, next)
				}
			}
		}
	}
	return nil
}
