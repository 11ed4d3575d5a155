package lifecycle

import (
	"errors"

	"github.com/ynifamily3/minesweeper/game"
)

// ErrIllegalIntent は現在の状態で受け付けられない操作に返されます
var ErrIllegalIntent = errors.New("illegal intent for state")

// State はゲームの進行状態です
type State int

const (
	Idle State = iota
	Playing
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome は終了したゲームの結果です
type Outcome int

const (
	NoOutcome Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "none"
	}
}

// Intent はプレイヤーの操作です。下の型のどれかになります
type Intent interface {
	intent() string
}

// Start は用意した盤面でゲームを始めます
type Start struct {
	Board      *game.Board
	TotalBombs int
}

// Flag はマスにフラグを立てます
type Flag struct{ At game.Coord }

// Unflag はマスのフラグを外します
type Unflag struct{ At game.Coord }

// Open はマスを開けます
type Open struct{ At game.Coord }

// OpenAdjacent は複数のマスをまとめて開けます (両クリック)
type OpenAdjacent struct{ Coords []game.Coord }

// Reset はゲームを捨ててアイドルに戻ります
type Reset struct{}

func (Start) intent() string        { return "start" }
func (Flag) intent() string         { return "flag" }
func (Unflag) intent() string       { return "unflag" }
func (Open) intent() string         { return "open" }
func (OpenAdjacent) intent() string { return "open_adjacent" }
func (Reset) intent() string        { return "reset" }

// IntentName は操作名を返します (ログ用)
func IntentName(in Intent) string {
	if in == nil {
		return "nil"
	}
	return in.intent()
}
