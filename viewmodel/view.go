package viewmodel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ynifamily3/minesweeper/lifecycle"
)

// CellView はフロントエンドに渡す1マスの情報です
// State は "hidden" / "flagged" / "opened" のどれかで、終了後の地雷は is_mine で示します
type CellView struct {
	State     string `json:"state"`
	Count     int    `json:"count"`
	IsMine    bool   `json:"is_mine"`
	WrongFlag bool   `json:"wrong_flag,omitempty"`
}

type GameView struct {
	ID             string       `json:"id,omitempty"`
	State          string       `json:"state"`
	Cells          [][]CellView `json:"cells"`
	MinesRemaining string       `json:"mines_remaining"`
	IsGameOver     bool         `json:"is_game_over"`
	IsGameClear    bool         `json:"is_game_clear"`
	Moves          int          `json:"moves"`
}

// NewGameView はスナップショットを JSON 用の構造体に変換します
func NewGameView(snap lifecycle.Snapshot) GameView {
	view := GameView{
		State:          snap.State.String(),
		MinesRemaining: snap.FlagsRemaining.String(),
		IsGameOver:     snap.Outcome == lifecycle.Lost,
		IsGameClear:    snap.Outcome == lifecycle.Won,
		Moves:          snap.Moves,
	}
	if snap.State != lifecycle.Idle {
		view.ID = snap.ID.String()
	}
	if snap.Cells != nil {
		view.Cells = make([][]CellView, len(snap.Cells))
	}

	for y, row := range snap.Cells {
		view.Cells[y] = make([]CellView, len(row))
		for x, c := range row {
			v := CellView{}
			switch c.State {
			case lifecycle.CellNumber:
				v.State = "opened"
				v.Count = c.Count
			case lifecycle.CellDetonated, lifecycle.CellMine:
				v.State = "opened"
				v.IsMine = true
			case lifecycle.CellFlagged:
				v.State = "flagged"
			case lifecycle.CellWrongFlag:
				v.State = "flagged"
				v.WrongFlag = true
			default:
				v.State = "hidden"
			}
			view.Cells[y][x] = v
		}
	}
	return view
}

// JSON はスナップショットを JSON 文字列にします
// 盤面がまだない場合は空のJSONオブジェクトを返します
func JSON(snap lifecycle.Snapshot) string {
	if snap.Cells == nil {
		return "{}"
	}
	bytes, err := json.Marshal(NewGameView(snap))
	if err != nil {
		return "{}"
	}
	return string(bytes)
}

// Text はスナップショットをターミナル表示用の文字列にします
// 未開封は「-」、フラグは「F」、0 は「.」、数字はそのまま
// 踏んだ地雷は「X」、終了後に明かす地雷は「*」、間違ったフラグは「!」
func Text(snap lifecycle.Snapshot) string {
	var sb strings.Builder
	if snap.Cells == nil {
		sb.WriteString("(no game)\n")
		return sb.String()
	}

	// 列番号
	sb.WriteString("    ")
	for x := 0; x < snap.Cols; x++ {
		fmt.Fprintf(&sb, "%2d", x%100)
	}
	sb.WriteByte('\n')

	for y, row := range snap.Cells {
		fmt.Fprintf(&sb, "%2d: ", y)
		for _, c := range row {
			sb.WriteByte(' ')
			sb.WriteString(symbol(c))
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "mines: %s  moves: %d  state: %s", snap.FlagsRemaining, snap.Moves, snap.State)
	if snap.Outcome != lifecycle.NoOutcome {
		fmt.Fprintf(&sb, " (%s)", snap.Outcome)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func symbol(c lifecycle.CellView) string {
	switch c.State {
	case lifecycle.CellNumber:
		if c.Count == 0 {
			return "."
		}
		return fmt.Sprintf("%d", c.Count)
	case lifecycle.CellDetonated:
		return "X"
	case lifecycle.CellMine:
		return "*"
	case lifecycle.CellFlagged:
		return "F"
	case lifecycle.CellWrongFlag:
		return "!"
	default:
		return "-"
	}
}
