package main

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/ynifamily3/minesweeper/game"
	"github.com/ynifamily3/minesweeper/lifecycle"
)

func TestPlaySession(t *testing.T) {
	c := lifecycle.NewController(lifecycle.WithRand(rand.New(rand.NewSource(5))))
	in := strings.NewReader("f 0 0\nu 0 0\no x 1\nhelp\nr\nq\no 0 0\n")
	var out bytes.Buffer

	if err := play(in, &out, c, 4, 3); err != nil {
		t.Fatalf("play: %v", err)
	}
	got := out.String()
	for _, want := range []string{"commands:", "mines: 2", "mines: 3", `invalid row "x"`, "(no game)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if c.State() != lifecycle.Idle {
		t.Fatalf("state=%s, want idle (input after q must be ignored)", c.State())
	}
}

func TestPlayReportsIllegalIntent(t *testing.T) {
	c := lifecycle.NewController()
	var out bytes.Buffer
	if err := play(strings.NewReader("r\no 1 1\nn\n"), &out, c, 3, 1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "error: "+lifecycle.ErrIllegalIntent.Error()) {
		t.Fatalf("illegal open not reported:\n%s", out.String())
	}
	if c.State() != lifecycle.Playing {
		t.Fatalf("n did not start a new game: %s", c.State())
	}
}

func TestPlayRejectsInvalidBoard(t *testing.T) {
	err := play(strings.NewReader(""), &bytes.Buffer{}, lifecycle.NewController(), 1, 1)
	if !errors.Is(err, game.ErrInvalidBombCount) {
		t.Fatalf("err=%v, want ErrInvalidBombCount", err)
	}
}

func TestPlayNewGameReplacesLiveGame(t *testing.T) {
	c := lifecycle.NewController(lifecycle.WithRand(rand.New(rand.NewSource(8))))
	var out bytes.Buffer
	if err := play(strings.NewReader("f 0 0\nn\nq\n"), &out, c, 4, 3); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if strings.Contains(got, "error:") {
		t.Fatalf("n reported an error:\n%s", got)
	}
	if c.State() != lifecycle.Playing || c.Snapshot().FlaggedCount != 0 {
		t.Fatalf("n did not replace the game: state=%s flags=%d", c.State(), c.Snapshot().FlaggedCount)
	}
	if strings.Count(got, "mines: 3") != 2 {
		t.Fatalf("expected two fresh boards:\n%s", got)
	}
}
