package lifecycle

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/ynifamily3/minesweeper/game"
)

// Session は1プレイ分のコンテキストです
// Transition は Session を作り直して返すので、呼び出し側は古い値を持ち続けても安全です
type Session struct {
	ID                uuid.UUID
	State             State
	Board             *game.Board
	TotalBombs        int
	FlaggedCount      int
	FirstTouchPending bool
	BombWasOpened     bool
	Moves             int // 盤面が変わった操作の回数
}

// NewSession はアイドル状態の空のコンテキストを返します
func NewSession() Session {
	return Session{State: Idle, FirstTouchPending: true}
}

// Outcome は終了していれば勝ち負けを返します
func (s Session) Outcome() Outcome {
	if s.State != Ended {
		return NoOutcome
	}
	if s.BombWasOpened {
		return Lost
	}
	return Won
}

func (s Session) clone() Session {
	next := s
	if s.Board != nil {
		next.Board = s.Board.Clone()
	}
	return next
}

// Options は Transition の振る舞いを決めます
type Options struct {
	Rand       *rand.Rand            // 地雷の移動先選び。nil なら時刻で初期化
	Relocation game.RelocationPolicy // 最初の一手の救済ルール
}

// Effects は1回の遷移で起きたことです
type Effects struct {
	From, To    State
	Opened      []game.Coord // 開いたマス
	Detonated   bool         // 地雷を開けたか
	Relocated   bool         // 最初の一手で地雷を移したか
	RelocatedTo game.Coord
	Noop        bool // 盤面に変化がなかったか
}

// Transition は (状態, 操作) から次の Session を計算します
// 受け付けられない操作は ErrIllegalIntent を返し、s をそのまま返します
func Transition(s Session, in Intent, opts Options) (Session, Effects, error) {
	eff := Effects{From: s.State, To: s.State}

	var (
		next Session
		err  error
	)
	switch s.State {
	case Idle:
		next, err = idle(s, in)
	case Playing:
		next, err = playing(s, in, opts, &eff)
	case Ended:
		next, err = ended(s, in)
	default:
		err = fmt.Errorf("%w: unknown state %d", ErrIllegalIntent, s.State)
	}
	if err != nil {
		return s, Effects{From: s.State, To: s.State, Noop: true}, err
	}

	eff.To = next.State
	return next, eff, nil
}

func illegal(s Session, in Intent) error {
	return fmt.Errorf("%w: %s while %s", ErrIllegalIntent, IntentName(in), s.State)
}

func idle(s Session, in Intent) (Session, error) {
	start, ok := in.(Start)
	if !ok {
		return s, illegal(s, in)
	}
	if start.Board == nil {
		return s, fmt.Errorf("%w: no board", game.ErrInvalidSize)
	}
	if start.TotalBombs < 0 || start.TotalBombs >= start.Board.Size() {
		return s, fmt.Errorf("%w: %d bombs on %d cells", game.ErrInvalidBombCount, start.TotalBombs, start.Board.Size())
	}
	if placed := start.Board.BombCount(); placed != start.TotalBombs {
		return s, fmt.Errorf("%w: board holds %d bombs, not %d", game.ErrInvalidBombCount, placed, start.TotalBombs)
	}

	next := Session{
		ID:                uuid.New(),
		State:             Playing,
		Board:             start.Board.Clone(),
		TotalBombs:        start.TotalBombs,
		FirstTouchPending: true,
	}
	return evaluateGuards(next), nil
}

func ended(s Session, in Intent) (Session, error) {
	if _, ok := in.(Reset); !ok {
		return s, illegal(s, in)
	}
	return NewSession(), nil
}

func playing(s Session, in Intent, opts Options, eff *Effects) (Session, error) {
	switch in := in.(type) {
	case Flag:
		next := s.clone()
		if !next.Board.SetFlag(in.At.Row, in.At.Col) {
			eff.Noop = true
			return s, nil
		}
		next.FlaggedCount++
		next.Moves++
		return next, nil

	case Unflag:
		next := s.clone()
		if !next.Board.RemoveFlag(in.At.Row, in.At.Col) {
			eff.Noop = true
			return s, nil
		}
		next.FlaggedCount--
		next.Moves++
		return next, nil

	case Open:
		return openCell(s, in.At, opts, eff), nil

	case OpenAdjacent:
		return openAdjacent(s, in.Coords, eff), nil

	case Reset:
		return NewSession(), nil

	default:
		return s, illegal(s, in)
	}
}

func openCell(s Session, at game.Coord, opts Options, eff *Effects) Session {
	cell, ok := s.Board.Cell(at.Row, at.Col)
	// 範囲外・開封済み・フラグ付きは何もしない (救済も消費しない)
	if !ok || cell.IsOpen || cell.IsFlagged {
		eff.Noop = true
		return s
	}

	next := s.clone()
	if next.FirstTouchPending && cell.IsBomb {
		if to, moved := next.Board.RelocateBombAwayFrom(opts.Rand, at.Row, at.Col, opts.Relocation); moved {
			eff.Relocated = true
			eff.RelocatedTo = to
		}
	}
	eff.Opened = next.Board.RevealFrom(at.Row, at.Col)
	next.FirstTouchPending = false
	next.Moves++

	cell, _ = next.Board.Cell(at.Row, at.Col)
	next.BombWasOpened = cell.IsBomb && cell.IsOpen
	eff.Detonated = next.BombWasOpened

	return evaluateGuards(next)
}

func openAdjacent(s Session, coords []game.Coord, eff *Effects) Session {
	next := s.clone()
	for _, p := range coords {
		opened := next.Board.RevealFrom(p.Row, p.Col)
		eff.Opened = append(eff.Opened, opened...)
		if c, ok := next.Board.Cell(p.Row, p.Col); ok && c.IsBomb && c.IsOpen && len(opened) > 0 {
			eff.Detonated = true
		}
	}
	if len(eff.Opened) == 0 {
		eff.Noop = true
		return s
	}

	next.Moves++
	if eff.Detonated {
		next.BombWasOpened = true
	}
	return evaluateGuards(next)
}

// evaluateGuards は負け、勝ちの順にガードを評価します
func evaluateGuards(s Session) Session {
	if s.State != Playing {
		return s
	}
	if s.BombWasOpened || s.Board.SafeCellsOpen() {
		s.State = Ended
	}
	return s
}
