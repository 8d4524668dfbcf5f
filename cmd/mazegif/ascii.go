package main

import (
	"bufio"
	"io"

	"github.com/lixenwraith/mazegif/maze"
)

// drawASCII prints the finished maze with its solution path
func drawASCII(out io.Writer, res maze.Result) error {
	pathMap := make(map[maze.Point]bool, len(res.SolutionPath))
	for _, p := range res.SolutionPath {
		pathMap[p] = true
	}

	w := bufio.NewWriter(out)
	for y, row := range res.Grid {
		for x, isWall := range row {
			p := maze.Point{X: x, Y: y}

			switch {
			case p == res.Start:
				w.WriteByte('S')
			case p == res.End:
				w.WriteByte('E')
			case isWall:
				w.WriteString("█")
			case pathMap[p]:
				w.WriteString("•")
			default:
				w.WriteByte(' ')
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
