package preview

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	tickFrequency = 880
	tickLength    = 30 * time.Millisecond
)

// Ticker plays a short tone for each displayed frame
type Ticker struct {
	sampleRate beep.SampleRate
}

// NewTicker initializes the audio device
func NewTicker() (*Ticker, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Ticker{sampleRate: sampleRate}, nil
}

func (t *Ticker) Tick() {
	sine, err := generators.SineTone(t.sampleRate, tickFrequency)
	if err != nil {
		log.Printf("Tick tone failed: %v", err)
		return
	}
	speaker.Play(beep.Take(t.sampleRate.N(tickLength), sine))
}

func (t *Ticker) Close() {
	speaker.Close()
}
