package game

import (
	"math/rand"
	"sort"
	"testing"
)

func sortCoords(cs []Coord) []Coord {
	out := append([]Coord(nil), cs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func equalCoords(a, b []Coord) bool {
	a, b = sortCoords(a), sortCoords(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isOpen(b *Board, row, col int) bool {
	c, _ := b.Cell(row, col)
	return c.IsOpen
}

func TestRevealFromNumberedCellStops(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{1, 1})

	opened := b.RevealFrom(0, 0)
	if !equalCoords(opened, []Coord{{0, 0}}) {
		t.Fatalf("opened %v, want only (0,0)", opened)
	}
	if isOpen(b, 0, 1) || isOpen(b, 1, 0) || isOpen(b, 1, 1) {
		t.Fatalf("cascade went past a numbered cell:\n%s", b)
	}
}

func TestRevealFromCascade(t *testing.T) {
	b := mustBoard(t, 4, 4, Coord{3, 3})

	opened := b.RevealFrom(0, 0)
	if len(opened) != 15 {
		t.Fatalf("opened %d cells, want 15:\n%s", len(opened), b)
	}
	if isOpen(b, 3, 3) {
		t.Fatal("cascade opened the bomb")
	}
	if !b.SafeCellsOpen() {
		t.Fatalf("board should be cleared:\n%s", b)
	}
}

func TestRevealFromStopsAtNumberBoundary(t *testing.T) {
	// 0 0 0 1 *
	b := mustBoard(t, 1, 5, Coord{0, 4})

	opened := b.RevealFrom(0, 0)
	if !equalCoords(opened, []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}}) {
		t.Fatalf("opened %v", opened)
	}
	if isOpen(b, 0, 4) {
		t.Fatal("bomb opened by cascade")
	}
}

func TestRevealFromRespectsFlags(t *testing.T) {
	b := mustBoard(t, 1, 5, Coord{0, 4})
	b.SetFlag(0, 2)

	opened := b.RevealFrom(0, 0)
	if !equalCoords(opened, []Coord{{0, 0}, {0, 1}}) {
		t.Fatalf("opened %v, want (0,0) (0,1)", opened)
	}
	if got := b.RevealFrom(0, 2); got != nil {
		t.Fatalf("revealing a flagged cell opened %v", got)
	}
}

func TestRevealFromBomb(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{1, 1})
	opened := b.RevealFrom(1, 1)
	if !equalCoords(opened, []Coord{{1, 1}}) {
		t.Fatalf("opened %v, want just the bomb", opened)
	}
	c, _ := b.Cell(1, 1)
	if !c.IsOpen || !c.IsBomb {
		t.Fatalf("bomb cell state %+v", c)
	}
}

func TestRevealFromIsIdempotent(t *testing.T) {
	b := mustBoard(t, 6, 6, Coord{5, 0}, Coord{2, 4})
	b.RevealFrom(0, 0)
	before := b.Clone()

	if got := b.RevealFrom(0, 0); len(got) != 0 {
		t.Fatalf("second reveal opened %v", got)
	}
	if b.String() != before.String() {
		t.Fatalf("second reveal changed the board:\n%s\nvs\n%s", before, b)
	}
	if got := b.RevealFrom(-1, 9); got != nil {
		t.Fatalf("out-of-bounds reveal opened %v", got)
	}
}

func TestRevealFromLargeEmptyBoard(t *testing.T) {
	b := mustBoard(t, 200, 200)
	if got := len(b.RevealFrom(100, 100)); got != 200*200 {
		t.Fatalf("opened %d cells, want %d", got, 200*200)
	}
}

func TestResolvableNeighbors(t *testing.T) {
	newOpened := func(t *testing.T) *Board {
		b := mustBoard(t, 3, 3, Coord{0, 0})
		b.RevealFrom(1, 1)
		return b
	}

	t.Run("satisfied", func(t *testing.T) {
		b := newOpened(t)
		b.SetFlag(0, 0)
		got := b.ResolvableNeighbors(1, 1)
		want := []Coord{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
		if !equalCoords(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("under-flagged", func(t *testing.T) {
		b := newOpened(t)
		if got := b.ResolvableNeighbors(1, 1); len(got) != 0 {
			t.Fatalf("got %v, want none", got)
		}
	})

	t.Run("over-flagged", func(t *testing.T) {
		b := newOpened(t)
		b.SetFlag(0, 0)
		b.SetFlag(2, 2)
		if got := b.ResolvableNeighbors(1, 1); len(got) != 0 {
			t.Fatalf("got %v, want none", got)
		}
	})

	t.Run("skips open neighbors", func(t *testing.T) {
		b := newOpened(t)
		b.SetFlag(0, 0)
		b.OpenCell(2, 2)
		for _, p := range b.ResolvableNeighbors(1, 1) {
			if p == (Coord{2, 2}) || p == (Coord{0, 0}) {
				t.Fatalf("returned open or flagged neighbor %v", p)
			}
		}
	})

	t.Run("hidden cell", func(t *testing.T) {
		b := mustBoard(t, 3, 3, Coord{0, 0})
		if got := b.ResolvableNeighbors(1, 1); got != nil {
			t.Fatalf("hidden cell resolved %v", got)
		}
	})
}

func TestRelocateBombAwayFromStrict(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := mustBoard(t, 9, 9, Coord{4, 4})
		rng := rand.New(rand.NewSource(seed))

		to, ok := b.RelocateBombAwayFrom(rng, 4, 4, RelocateStrict)
		if !ok {
			t.Fatal("relocation failed")
		}
		if to.Row == 4 || to.Col == 4 {
			t.Fatalf("seed %d: relocated to %v sharing a row or column", seed, to)
		}
		if c, _ := b.Cell(4, 4); c.IsBomb {
			t.Fatal("original cell still a bomb")
		}
		if c, _ := b.Cell(to.Row, to.Col); !c.IsBomb {
			t.Fatal("target is not a bomb")
		}
		if b.BombCount() != 1 {
			t.Fatalf("BombCount=%d, want 1", b.BombCount())
		}
		assertCounts(t, b)
	}
}

func TestRelocateBombAwayFromStrictFallsBack(t *testing.T) {
	b := mustBoard(t, 1, 3, Coord{0, 0})
	to, ok := b.RelocateBombAwayFrom(rand.New(rand.NewSource(7)), 0, 0, RelocateStrict)
	if !ok {
		t.Fatal("single-row board should fall back to any other cell")
	}
	if to == (Coord{0, 0}) {
		t.Fatal("bomb did not move")
	}
	assertCounts(t, b)
}

func TestRelocateBombAwayFromAnyOther(t *testing.T) {
	b := mustBoard(t, 2, 2, Coord{0, 0}, Coord{1, 1}, Coord{0, 1})
	to, ok := b.RelocateBombAwayFrom(rand.New(rand.NewSource(1)), 0, 0, RelocateAnyOther)
	if !ok || to != (Coord{1, 0}) {
		t.Fatalf("relocated to %v ok=%v, want (1,0)", to, ok)
	}
	assertCounts(t, b)
}

func TestRelocateBombAwayFromNoop(t *testing.T) {
	b := mustBoard(t, 3, 3, Coord{0, 0})
	if _, ok := b.RelocateBombAwayFrom(nil, 1, 1, RelocateStrict); ok {
		t.Fatal("relocating a safe cell should be a no-op")
	}
	if _, ok := b.RelocateBombAwayFrom(nil, 5, 5, RelocateStrict); ok {
		t.Fatal("relocating out of bounds should be a no-op")
	}
}

func TestCountsHoldAfterRandomPlacementAndRelocation(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := mustBoard(t, 8, 8)
		if err := b.PlaceBombs(rng, 12); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < b.Size(); i++ {
			p := b.coord(i)
			if c, _ := b.Cell(p.Row, p.Col); c.IsBomb {
				b.RelocateBombAwayFrom(rng, p.Row, p.Col, RelocateStrict)
				break
			}
		}
		if b.BombCount() != 12 {
			t.Fatalf("seed %d: BombCount=%d", seed, b.BombCount())
		}
		assertCounts(t, b)
	}
}
