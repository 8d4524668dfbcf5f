package maze

import (
	"fmt"

	"github.com/lixenwraith/mazegif/gif"
)

// Painter receives the drawing calls of a replayed maze. *gif.Writer
// satisfies it.
type Painter interface {
	PutRect(x1, y1, x2, y2 int, c gif.RGB) error
	NextFrame(delay uint16) error
	Hold(delay uint16) error
}

// Style controls how a maze is drawn. Delays are in hundredths of a second.
type Style struct {
	Scale int

	Wall     gif.RGB
	Path     gif.RGB // active branch
	Hall     gif.RGB // finished corridor
	Solution gif.RGB

	CarveDelay   uint16
	RetreatDelay uint16
	SolveDelay   uint16
	FinalDelay   uint16 // delay of the last frame

	Solve bool
}

// DefaultStyle mirrors the classic black/green/white backtracker animation
func DefaultStyle() Style {
	return Style{
		Scale:        3,
		Wall:         gif.RGB{R: 0, G: 0, B: 0},
		Path:         gif.RGB{R: 0, G: 255, B: 0},
		Hall:         gif.RGB{R: 255, G: 255, B: 255},
		Solution:     gif.RGB{R: 255, G: 0, B: 0},
		CarveDelay:   5,
		RetreatDelay: 3,
		SolveDelay:   2,
		FinalDelay:   1000,
	}
}

// Palette returns the colors used by st. The wall color comes first so a
// fresh canvas starts out as solid wall.
func (st Style) Palette() gif.Palette {
	pal := gif.Palette{st.Wall, st.Path, st.Hall}
	if st.Solve {
		pal = append(pal, st.Solution)
	}
	return pal
}

// Size returns the pixel dimensions of the rendered maze
func (st Style) Size(res Result) (width, height int) {
	return len(res.Grid[0]) * st.Scale, len(res.Grid) * st.Scale
}

type stroke struct {
	cells []Point
	color gif.RGB
	delay uint16
}

// Render replays the recorded generation steps onto p, committing one frame
// per step. The last frame is committed without delay and then held for
// FinalDelay.
func Render(p Painter, res Result, st Style) error {
	if st.Scale < 1 {
		return fmt.Errorf("maze: scale must be positive, got %d", st.Scale)
	}

	strokes := make([]stroke, 0, len(res.Steps)+len(res.SolutionPath))
	for _, s := range res.Steps {
		switch s.Kind {
		case StepCarve:
			strokes = append(strokes, stroke{[]Point{s.Cell, s.Wall}, st.Path, st.CarveDelay})
		case StepRetreat:
			strokes = append(strokes, stroke{[]Point{s.Cell, s.Wall}, st.Hall, st.RetreatDelay})
		case StepBraid:
			strokes = append(strokes, stroke{[]Point{s.Wall}, st.Hall, st.RetreatDelay})
		}
	}
	if st.Solve {
		for _, c := range res.SolutionPath {
			strokes = append(strokes, stroke{[]Point{c}, st.Solution, st.SolveDelay})
		}
	}
	if len(strokes) == 0 {
		return nil
	}
	strokes[len(strokes)-1].delay = 0

	for i, s := range strokes {
		for _, c := range s.cells {
			x1, y1 := c.X*st.Scale, c.Y*st.Scale
			if err := p.PutRect(x1, y1, x1+st.Scale-1, y1+st.Scale-1, s.color); err != nil {
				return fmt.Errorf("maze: stroke %d: %w", i, err)
			}
		}
		if err := p.NextFrame(s.delay); err != nil {
			return fmt.Errorf("maze: frame %d: %w", i, err)
		}
	}
	if err := p.Hold(st.FinalDelay); err != nil {
		return fmt.Errorf("maze: final hold: %w", err)
	}
	return nil
}
