package game

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// New は size x size の空の盤面を返します
func New(size int) (*Board, error) {
	return NewRect(size, size)
}

// NewRect は rows x cols の空の盤面を返します
// 全マスは未開封・フラグなし・地雷なし・数字 0 で初期化されます
// rows*cols が int に収まらない大きさも ErrInvalidSize になります
func NewRect(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 || cols > math.MaxInt/rows {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

// Size は全マス数を返します
func (b *Board) Size() int {
	return len(b.cells)
}

// InBounds は座標が盤面内かどうかを返します
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

func (b *Board) index(row, col int) int {
	return row*b.Cols + col
}

func (b *Board) coord(i int) Coord {
	return Coord{Row: i / b.Cols, Col: i % b.Cols}
}

// Cell は指定マスのコピーを返します。範囲外なら ok は false です
func (b *Board) Cell(row, col int) (c Cell, ok bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[b.index(row, col)], true
}

// Clone は盤面の完全なコピーを返します
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{Rows: b.Rows, Cols: b.Cols, cells: cells}
}

// Neighbors は周囲8マスのうち盤面内のものを返します
func (b *Board) Neighbors(row, col int) []Coord {
	out := make([]Coord, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		nr, nc := row+d.Row, col+d.Col
		if b.InBounds(nr, nc) {
			out = append(out, Coord{Row: nr, Col: nc})
		}
	}
	return out
}

// PlaceBombs は地雷をランダムに配置し、全マスの数字を計算します
// すでに置かれている地雷も count に含めます
func (b *Board) PlaceBombs(rng *rand.Rand, count int) error {
	if count < 0 || count >= len(b.cells) {
		return fmt.Errorf("%w: %d bombs on %d cells", ErrInvalidBombCount, count, len(b.cells))
	}
	placed := b.BombCount()
	if placed > count {
		return fmt.Errorf("%w: board already holds %d bombs", ErrInvalidBombCount, placed)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for placed < count {
		row := rng.Intn(b.Rows)
		col := rng.Intn(b.Cols)

		cell := &b.cells[b.index(row, col)]
		if !cell.IsBomb {
			cell.IsBomb = true
			placed++
		}
	}

	b.calculateNeighbors()
	return nil
}

// PlaceBombsAt は指定座標に地雷を置いて数字を計算し直します
// 範囲外の座標は無視されます
func (b *Board) PlaceBombsAt(coords ...Coord) {
	for _, p := range coords {
		if b.InBounds(p.Row, p.Col) {
			b.cells[b.index(p.Row, p.Col)].IsBomb = true
		}
	}
	b.calculateNeighbors()
}

// calculateNeighbors は全マスの AdjacentBombs を計算します
func (b *Board) calculateNeighbors() {
	for i := range b.cells {
		p := b.coord(i)
		b.cells[i].AdjacentBombs = b.CountAdjacentBombs(p.Row, p.Col)
	}
}

// recountAround は (row, col) とその周囲の数字を計算し直します
func (b *Board) recountAround(row, col int) {
	b.cells[b.index(row, col)].AdjacentBombs = b.CountAdjacentBombs(row, col)
	for _, n := range b.Neighbors(row, col) {
		b.cells[b.index(n.Row, n.Col)].AdjacentBombs = b.CountAdjacentBombs(n.Row, n.Col)
	}
}

// CountAdjacentBombs は周囲8マスにある地雷の数を数えます
// 盤面外の方向は 0 として扱います
func (b *Board) CountAdjacentBombs(row, col int) int {
	count := 0
	for _, d := range neighborOffsets {
		nr, nc := row+d.Row, col+d.Col
		if b.InBounds(nr, nc) && b.cells[b.index(nr, nc)].IsBomb {
			count++
		}
	}
	return count
}

// BombCount は盤面上の地雷の総数を返します
func (b *Board) BombCount() int {
	n := 0
	for _, c := range b.cells {
		if c.IsBomb {
			n++
		}
	}
	return n
}

// FlagCount は立っているフラグの総数を返します
func (b *Board) FlagCount() int {
	n := 0
	for _, c := range b.cells {
		if c.IsFlagged {
			n++
		}
	}
	return n
}

// SafeCellsOpen は地雷でない全マスが開いているかどうかを返します
func (b *Board) SafeCellsOpen() bool {
	for _, c := range b.cells {
		if !c.IsBomb && !c.IsOpen {
			return false
		}
	}
	return true
}

// SetFlag はフラグを立てます。フラグの状態が変わったら true を返します
// 範囲外や開いているマスには何もしません
func (b *Board) SetFlag(row, col int) bool {
	return b.setFlag(row, col, true)
}

// RemoveFlag はフラグを外します。フラグの状態が変わったら true を返します
func (b *Board) RemoveFlag(row, col int) bool {
	return b.setFlag(row, col, false)
}

func (b *Board) setFlag(row, col int, v bool) bool {
	if !b.InBounds(row, col) {
		return false
	}
	cell := &b.cells[b.index(row, col)]

	// すでに開いているマスのフラグは触らない
	if cell.IsOpen || cell.IsFlagged == v {
		return false
	}
	cell.IsFlagged = v
	return true
}

// OpenCell は指定マスを無条件に開けます (範囲外は無視)
// 地雷・連鎖・フラグの扱いは呼び出し側で済ませておくこと
func (b *Board) OpenCell(row, col int) {
	if !b.InBounds(row, col) {
		return
	}
	b.cells[b.index(row, col)].IsOpen = true
}

// String は盤面をデバッグ用の文字列にします
// 未開封は「-」、フラグは「F」、地雷は「*」、0 は「.」、数字はそのまま
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			cell := b.cells[b.index(row, col)]
			switch {
			case cell.IsOpen && cell.IsBomb:
				sb.WriteByte('*')
			case cell.IsOpen && cell.AdjacentBombs == 0:
				sb.WriteByte('.')
			case cell.IsOpen:
				fmt.Fprintf(&sb, "%d", cell.AdjacentBombs)
			case cell.IsFlagged:
				sb.WriteByte('F')
			default:
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
