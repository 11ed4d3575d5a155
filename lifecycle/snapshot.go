package lifecycle

import (
	"strconv"

	"github.com/google/uuid"
)

// CellState は表示用のマスの状態です
type CellState int

const (
	CellHidden    CellState = iota // 未開封
	CellFlagged                    // フラグ
	CellNumber                     // 開いた数字マス (0 を含む)
	CellDetonated                  // 開けてしまった地雷
	CellMine                       // 終了後に見せる未開封の地雷
	CellWrongFlag                  // 終了後に見せる地雷でないマスのフラグ
)

func (c CellState) String() string {
	switch c {
	case CellHidden:
		return "hidden"
	case CellFlagged:
		return "flagged"
	case CellNumber:
		return "opened"
	case CellDetonated:
		return "detonated"
	case CellMine:
		return "mine"
	case CellWrongFlag:
		return "wrong_flag"
	default:
		return "unknown"
	}
}

// CellView は1マスの表示情報です。Count は CellNumber のときだけ意味を持ちます
type CellView struct {
	State CellState
	Count int
}

// FlagBudget は残りフラグ数です。フラグが地雷数を超えたら Known は false になります
type FlagBudget struct {
	Count int
	Known bool
}

func (f FlagBudget) String() string {
	if !f.Known {
		return "??"
	}
	return strconv.Itoa(f.Count)
}

// Snapshot は表示層に渡す読み取り専用の盤面と進行状態です
// Cells は毎回新しく作られるので、持ち続けても Controller 側に影響しません
type Snapshot struct {
	ID             uuid.UUID
	State          State
	Outcome        Outcome
	Rows, Cols     int
	Cells          [][]CellView
	TotalBombs     int
	FlaggedCount   int
	FlagsRemaining FlagBudget
	Moves          int
}

// NewSnapshot は Session から Snapshot を作ります
func NewSnapshot(s Session) Snapshot {
	snap := Snapshot{
		ID:           s.ID,
		State:        s.State,
		Outcome:      s.Outcome(),
		TotalBombs:   s.TotalBombs,
		FlaggedCount: s.FlaggedCount,
		Moves:        s.Moves,
	}
	remaining := s.TotalBombs - s.FlaggedCount
	snap.FlagsRemaining = FlagBudget{Count: remaining, Known: remaining >= 0}

	b := s.Board
	if b == nil {
		return snap
	}
	snap.Rows, snap.Cols = b.Rows, b.Cols
	snap.Cells = make([][]CellView, b.Rows)

	for row := 0; row < b.Rows; row++ {
		snap.Cells[row] = make([]CellView, b.Cols)
		for col := 0; col < b.Cols; col++ {
			c, _ := b.Cell(row, col)
			v := CellView{State: CellHidden}

			switch {
			case c.IsOpen && c.IsBomb:
				v.State = CellDetonated
			case c.IsOpen:
				v.State = CellNumber
				v.Count = c.AdjacentBombs
			case c.IsFlagged:
				v.State = CellFlagged
			}

			// 終了後は地雷の位置を明かす。勝ったときは残りの地雷をフラグとして見せる
			if s.State == Ended && !c.IsOpen {
				switch {
				case c.IsBomb && snap.Outcome == Won:
					v.State = CellFlagged
				case c.IsBomb && !c.IsFlagged:
					v.State = CellMine
				case !c.IsBomb && c.IsFlagged:
					v.State = CellWrongFlag
				}
			}
			snap.Cells[row][col] = v
		}
	}
	return snap
}
