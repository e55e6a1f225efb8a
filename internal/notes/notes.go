// Package notes simulates the decorative music notes that float across the
// page. It only tracks positions; rendering belongs to the shell.
package notes

import "music-eras-service/internal/random"

// Note is one floating glyph.
type Note struct {
	Glyph   string  `json:"glyph"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Size    float64 `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Stage is the area notes move in, in pixels.
type Stage struct {
	Width  float64
	Height float64
}

// DefaultStage matches the minigame note layer.
var DefaultStage = Stage{Width: 640, Height: 240}

const margin = 40

// Drift spawns notes near the bottom-left of the stage and lets them float
// up and to the right until they leave it.
type Drift struct {
	src   random.Source
	stage Stage
	notes []Note
}

func NewDrift(src random.Source, stage Stage) *Drift {
	return &Drift{src: src, stage: stage}
}

// Spawn adds one note at the left edge.
func (d *Drift) Spawn() {
	glyph := "♫"
	if d.src.Float64() < 0.5 {
		glyph = "♪"
	}
	d.notes = append(d.notes, Note{
		Glyph: glyph,
		X:     -20,
		Y:     d.stage.Height - 30 - d.src.Float64()*20,
		VX:    random.Between(d.src, 1.2, 2.4),
		VY:    -random.Between(d.src, 0.2, 0.8),
	})
}

// Step advances every note by its velocity and drops the ones out of bounds.
func (d *Drift) Step() {
	kept := d.notes[:0]
	for _, n := range d.notes {
		n.X += n.VX
		n.Y += n.VY
		if n.X > d.stage.Width+margin || n.Y < -margin {
			continue
		}
		kept = append(kept, n)
	}
	d.notes = kept
}

func (d *Drift) Clear() {
	d.notes = nil
}

func (d *Drift) Len() int {
	return len(d.notes)
}

// Notes returns a copy of the current notes.
func (d *Drift) Notes() []Note {
	return append([]Note(nil), d.notes...)
}

var bandGlyphs = []string{"♪", "♫", "♩", "♬"}

// Band keeps a fixed population of notes crossing a horizontal band,
// recycling each note to the left once it passes the right edge.
type Band struct {
	src    random.Source
	stage  Stage
	top    float64
	bottom float64
	notes  []Note
}

// NewBand returns a band spanning y in [60,200) of stage.
func NewBand(src random.Source, stage Stage) *Band {
	return &Band{src: src, stage: stage, top: 60, bottom: 200}
}

// Fill replaces the population with count fresh notes.
func (b *Band) Fill(count int) {
	b.notes = make([]Note, 0, count)
	for i := 0; i < count; i++ {
		b.notes = append(b.notes, Note{
			Glyph:   bandGlyphs[random.Index(b.src, len(bandGlyphs))],
			Size:    random.Between(b.src, 20, 50),
			Opacity: random.Between(b.src, 0.6, 0.95),
			X:       b.entryX(),
			Y:       random.Between(b.src, b.top, b.bottom),
			VX:      random.Between(b.src, 2, 5.5),
		})
	}
}

// Step moves notes right with a small random vertical drift.
func (b *Band) Step() {
	for i := range b.notes {
		n := &b.notes[i]
		n.X += n.VX
		if b.src.Float64() < 0.02 {
			if b.src.Float64() < 0.5 {
				n.Y -= 2
			} else {
				n.Y += 2
			}
		}
		if n.X > b.stage.Width+margin {
			n.X = b.entryX()
			n.Y = random.Between(b.src, b.top, b.bottom)
		}
	}
}

func (b *Band) entryX() float64 {
	return -margin - b.src.Float64()*200
}

func (b *Band) Clear() {
	b.notes = nil
}

func (b *Band) Len() int {
	return len(b.notes)
}

func (b *Band) Notes() []Note {
	return append([]Note(nil), b.notes...)
}
