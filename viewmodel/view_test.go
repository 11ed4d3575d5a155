package viewmodel

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ynifamily3/minesweeper/game"
	"github.com/ynifamily3/minesweeper/lifecycle"
)

func lostSnapshot(t *testing.T) lifecycle.Snapshot {
	t.Helper()
	b, err := game.NewRect(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	b.PlaceBombsAt(game.Coord{Row: 0, Col: 0}, game.Coord{Row: 0, Col: 2})

	c := lifecycle.NewController()
	if _, err := c.StartBoard(b, 2); err != nil {
		t.Fatal(err)
	}
	c.Open(1, 2)
	c.Flag(1, 0)
	snap, err := c.Open(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestNewGameViewAfterLoss(t *testing.T) {
	view := NewGameView(lostSnapshot(t))

	if !view.IsGameOver || view.IsGameClear || view.State != "ended" || view.ID == "" {
		t.Fatalf("unexpected view header %+v", view)
	}
	cases := []struct {
		y, x int
		want CellView
	}{
		{0, 0, CellView{State: "opened", IsMine: true}},
		{0, 2, CellView{State: "opened", IsMine: true}},
		{1, 0, CellView{State: "flagged", WrongFlag: true}},
		{1, 1, CellView{State: "hidden"}},
		{1, 2, CellView{State: "opened", Count: 1}},
	}
	for _, tc := range cases {
		if got := view.Cells[tc.y][tc.x]; got != tc.want {
			t.Errorf("cell (%d,%d)=%+v, want %+v", tc.y, tc.x, got, tc.want)
		}
	}
}

func TestJSON(t *testing.T) {
	if got := JSON(lifecycle.NewController().Snapshot()); got != "{}" {
		t.Fatalf("idle JSON=%s, want {}", got)
	}

	var view GameView
	if err := json.Unmarshal([]byte(JSON(lostSnapshot(t))), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(view.Cells) != 2 || len(view.Cells[0]) != 3 {
		t.Fatalf("cells %dx?", len(view.Cells))
	}
	if view.MinesRemaining != "1" {
		t.Fatalf("mines_remaining=%s, want 1", view.MinesRemaining)
	}
}

func TestText(t *testing.T) {
	got := Text(lostSnapshot(t))
	for _, want := range []string{" 0:  X - *", " 1:  ! - 1", "state: ended (lost)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Text() missing %q:\n%s", want, got)
		}
	}
	if Text(lifecycle.Snapshot{}) != "(no game)\n" {
		t.Fatal("empty snapshot text")
	}
}
