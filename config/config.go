// Package config loads mazegif settings from TOML.
package config

import (
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazegif/gif"
	"github.com/lixenwraith/mazegif/maze"
)

// Config is the complete tool configuration
type Config struct {
	Maze    MazeSection    `toml:"maze"`
	Palette PaletteSection `toml:"palette"`
	Timing  TimingSection  `toml:"timing"`
	Output  OutputSection  `toml:"output"`
}

// MazeSection sizes are in maze cells; Scale is pixels per cell
type MazeSection struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Scale    int     `toml:"scale"`
	Braiding float64 `toml:"braiding"`
	Seed     int64   `toml:"seed"`
	Solve    bool    `toml:"solve"`
}

// PaletteSection colors are hex strings such as "#00ff00"
type PaletteSection struct {
	Wall     string `toml:"wall"`
	Path     string `toml:"path"`
	Hall     string `toml:"hall"`
	Solution string `toml:"solution"`
}

// TimingSection delays are in hundredths of a second
type TimingSection struct {
	Carve   uint16 `toml:"carve"`
	Retreat uint16 `toml:"retreat"`
	Solve   uint16 `toml:"solve"`
	Final   uint16 `toml:"final"`
}

type OutputSection struct {
	Path string `toml:"path"`
	Loop uint16 `toml:"loop"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Maze: MazeSection{
			Width:  83,
			Height: 83,
			Scale:  3,
		},
		Palette: PaletteSection{
			Wall:     "#000000",
			Path:     "#00ff00",
			Hall:     "#ffffff",
			Solution: "#ff0000",
		},
		Timing: TimingSection{
			Carve:   5,
			Retreat: 3,
			Solve:   2,
			Final:   1000,
		},
		Output: OutputSection{
			Path: "maze.gif",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, keeping values absent from data
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(err, "parsing toml")
	}
	return cfg.Validate()
}

// Encode renders cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encoding toml")
	}
	return data, nil
}

// Validate checks ranges and that the palette colors parse and differ
func (c Config) Validate() error {
	if c.Maze.Width < 3 || c.Maze.Height < 3 {
		return errors.Errorf("maze must be at least 3x3 cells, got %dx%d", c.Maze.Width, c.Maze.Height)
	}
	if c.Maze.Scale < 1 {
		return errors.Errorf("scale must be positive, got %d", c.Maze.Scale)
	}
	if c.Maze.Braiding < 0 || c.Maze.Braiding > 1 {
		return errors.Errorf("braiding must be within [0, 1], got %g", c.Maze.Braiding)
	}
	if w, h := c.Maze.Width*c.Maze.Scale, c.Maze.Height*c.Maze.Scale; w > 65535 || h > 65535 {
		return errors.Errorf("image %dx%d exceeds 65535 pixels", w, h)
	}
	if c.Output.Path == "" {
		return errors.New("output path is empty")
	}
	_, err := c.Style()
	return err
}

// ParseColor converts a hex color string to a palette color
func ParseColor(s string) (gif.RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return gif.RGB{}, errors.Wrapf(err, "color %q", s)
	}
	r, g, b := col.RGB255()
	return gif.RGB{R: r, G: g, B: b}, nil
}

// Style builds the maze drawing style
func (c Config) Style() (maze.Style, error) {
	st := maze.Style{
		Scale:        c.Maze.Scale,
		CarveDelay:   c.Timing.Carve,
		RetreatDelay: c.Timing.Retreat,
		SolveDelay:   c.Timing.Solve,
		FinalDelay:   c.Timing.Final,
		Solve:        c.Maze.Solve,
	}

	colors := []struct {
		name string
		hex  string
		dst  *gif.RGB
	}{
		{"wall", c.Palette.Wall, &st.Wall},
		{"path", c.Palette.Path, &st.Path},
		{"hall", c.Palette.Hall, &st.Hall},
	}
	// The solution color only enters the palette when solving
	if c.Maze.Solve {
		colors = append(colors, struct {
			name string
			hex  string
			dst  *gif.RGB
		}{"solution", c.Palette.Solution, &st.Solution})
	}
	seen := make(map[gif.RGB]string, len(colors))
	for _, col := range colors {
		rgb, err := ParseColor(col.hex)
		if err != nil {
			return st, errors.Wrapf(err, "palette.%s", col.name)
		}
		if prev, dup := seen[rgb]; dup {
			return st, errors.Errorf("palette.%s duplicates palette.%s", col.name, prev)
		}
		seen[rgb] = col.name
		*col.dst = rgb
	}
	return st, nil
}

// Generator builds the maze generator settings
func (c Config) Generator() maze.Config {
	return maze.Config{
		Width:    c.Maze.Width,
		Height:   c.Maze.Height,
		Braiding: c.Maze.Braiding,
		Seed:     c.Maze.Seed,
	}
}
