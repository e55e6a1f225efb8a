package notes

import (
	"math"
	"testing"

	"music-eras-service/internal/random"
)

func TestDriftSpawnAndExpire(t *testing.T) {
	d := NewDrift(random.NewScript(0.5), Stage{Width: 10, Height: 100})
	d.Spawn()
	if d.Len() != 1 {
		t.Fatalf("expected one note, got %d", d.Len())
	}
	n := d.Notes()[0]
	if n.X != -20 || n.Y != 60 {
		t.Fatalf("unexpected spawn position %+v", n)
	}
	if !approx(n.VX, 1.8) || !approx(n.VY, -0.5) {
		t.Fatalf("unexpected velocity %+v", n)
	}

	// 1.8px per step needs 39 steps to pass x = 10+40.
	for i := 0; i < 38; i++ {
		d.Step()
	}
	if d.Len() != 1 {
		t.Fatalf("note expired too early")
	}
	d.Step()
	if d.Len() != 0 {
		t.Fatalf("expected note to leave the stage, x=%v", d.Notes())
	}
}

func TestDriftClear(t *testing.T) {
	d := NewDrift(random.New(1), DefaultStage)
	for i := 0; i < 5; i++ {
		d.Spawn()
	}
	d.Clear()
	if d.Len() != 0 {
		t.Fatalf("expected empty drift after clear")
	}
}

func TestBandRecyclesNotes(t *testing.T) {
	b := NewBand(random.New(3), Stage{Width: 100, Height: 300})
	b.Fill(22)
	if b.Len() != 22 {
		t.Fatalf("expected 22 notes, got %d", b.Len())
	}
	for i := 0; i < 500; i++ {
		b.Step()
	}
	if b.Len() != 22 {
		t.Fatalf("band population changed: %d", b.Len())
	}
	for _, n := range b.Notes() {
		if n.X > 100+margin {
			t.Fatalf("note was not recycled: %+v", n)
		}
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
