package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/mazegif/gif"
)

const (
	halfBlock = '▀'

	centisecond = 10 * time.Millisecond
	minDelay    = 20 * time.Millisecond
)

// Player composes recorded frames and draws them on a tcell screen
type Player struct {
	screen        tcell.Screen
	width, height int
	colors        []tcell.Color
	frames        []gif.Frame
	ticker        *Ticker

	pix    []uint8
	shown  int // frames composed into pix
	paused bool
}

// NewPlayer prepares playback of frames over a width x height image
func NewPlayer(screen tcell.Screen, width, height int, pal gif.Palette, frames []gif.Frame) *Player {
	colors := make([]tcell.Color, len(pal))
	for i, c := range pal {
		colors[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return &Player{
		screen: screen,
		width:  width,
		height: height,
		colors: colors,
		frames: frames,
		pix:    make([]uint8, width*height),
	}
}

// SetTicker enables an audible tick on every frame
func (p *Player) SetTicker(t *Ticker) { p.ticker = t }

// Seek composes frames 0..i into the image
func (p *Player) Seek(i int) {
	if i >= len(p.frames) {
		i = len(p.frames) - 1
	}
	if i+1 < p.shown {
		clear(p.pix)
		p.shown = 0
	}
	for ; p.shown <= i; p.shown++ {
		f := p.frames[p.shown]
		b := f.Bounds
		k := 0
		for y := b.Y1; y <= b.Y2; y++ {
			copy(p.pix[y*p.width+b.X1:y*p.width+b.X2+1], f.Pix[k:k+b.Width()])
			k += b.Width()
		}
	}
}

// step returns the sampling stride that fits the image on screen
func (p *Player) step(cols, rows int) int {
	rows-- // status line
	if cols < 1 || rows < 1 {
		return 0
	}
	s := 1
	for (p.width+s-1)/s > cols || (p.height+2*s-1)/(2*s) > rows {
		s++
	}
	return s
}

// Draw renders the composed image and the status line
func (p *Player) Draw() {
	p.screen.Clear()
	cols, rows := p.screen.Size()
	s := p.step(cols, rows)
	if s == 0 {
		p.screen.Show()
		return
	}

	for ty := 0; 2*ty*s < p.height; ty++ {
		top := 2 * ty * s
		bottom := top + s
		for tx := 0; tx*s < p.width; tx++ {
			x := tx * s
			fg := p.colors[p.pix[top*p.width+x]]
			bg := tcell.ColorBlack
			if bottom < p.height {
				bg = p.colors[p.pix[bottom*p.width+x]]
			}
			p.screen.SetContent(tx, ty, halfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}

	status := fmt.Sprintf(" frame %d/%d  %dx%d", p.shown, len(p.frames), p.width, p.height)
	if s > 1 {
		status += fmt.Sprintf("  1:%d", s)
	}
	if p.paused {
		status += "  [paused]"
	}
	status += "  space pause · q quit"
	status = runewidth.Truncate(status, cols, "…")
	x := 0
	for _, r := range status {
		p.screen.SetContent(x, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
		x += runewidth.RuneWidth(r)
	}

	p.screen.Show()
}

// Render composes frames up to i and draws them
func (p *Player) Render(i int) {
	p.Seek(i)
	p.Draw()
}

func frameDelay(cs uint16) time.Duration {
	d := time.Duration(cs) * centisecond
	if d < minDelay {
		return minDelay
	}
	return d
}

// Play loops over the frames until ctx is done or the user quits
func (p *Player) Play(ctx context.Context) error {
	if len(p.frames) == 0 {
		return fmt.Errorf("preview: no frames to play")
	}

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	i := 0
	p.Render(i)
	timer := time.NewTimer(frameDelay(p.frames[i].Delay))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					p.paused = !p.paused
					if !p.paused {
						timer.Reset(frameDelay(p.frames[i].Delay))
					}
					p.Draw()
				}
			case *tcell.EventResize:
				p.screen.Sync()
				p.Draw()
			}

		case <-timer.C:
			if p.paused {
				continue
			}
			i = (i + 1) % len(p.frames)
			p.Render(i)
			if p.ticker != nil {
				p.ticker.Tick()
			}
			timer.Reset(frameDelay(p.frames[i].Delay))
		}
	}
}
