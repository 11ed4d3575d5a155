package game

import (
	"math/rand"
	"time"
)

// RevealFrom は指定マスから 0 連鎖（Flood Fill）で開けていき、開けたマスを返します
//
//   - すでに開いている、またはフラグがあるマスは開けない (連鎖中も同じ)
//   - 地雷なら開けて止まる (負け判定は呼び出し側)
//   - 数字マスなら開けて止まる
//   - 0 のマスなら開けて周囲8マスへ広がる
//
// 再帰ではなくスタックで辿り、visited は盤面全体で1つだけ持つので
// 各マスは高々1回しか処理されません
func (b *Board) RevealFrom(row, col int) []Coord {
	if !b.InBounds(row, col) {
		return nil
	}

	var opened []Coord
	visited := make([]bool, len(b.cells))
	start := b.index(row, col)
	visited[start] = true
	stack := []int{start}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := &b.cells[i]
		if cell.IsOpen || cell.IsFlagged {
			continue
		}
		cell.IsOpen = true
		p := b.coord(i)
		opened = append(opened, p)

		if cell.IsBomb || cell.AdjacentBombs > 0 {
			continue
		}
		for _, d := range neighborOffsets {
			nr, nc := p.Row+d.Row, p.Col+d.Col
			if !b.InBounds(nr, nc) {
				continue
			}
			j := b.index(nr, nc)
			if !visited[j] {
				visited[j] = true
				stack = append(stack, j)
			}
		}
	}
	return opened
}

// ResolvableNeighbors は開いた数字マスの周りで安全に開けられるマスを返します
// 周囲のフラグ数が数字とぴったり一致するときだけ、未開封かつフラグなしの
// マスを全て返します。足りない・多すぎる場合は何も返しません
func (b *Board) ResolvableNeighbors(row, col int) []Coord {
	if !b.InBounds(row, col) {
		return nil
	}
	cell := b.cells[b.index(row, col)]
	if !cell.IsOpen || cell.IsBomb {
		return nil
	}

	flags := 0
	var hidden []Coord
	for _, n := range b.Neighbors(row, col) {
		neighbor := b.cells[b.index(n.Row, n.Col)]
		if neighbor.IsFlagged {
			flags++
		} else if !neighbor.IsOpen {
			hidden = append(hidden, n)
		}
	}

	if flags != cell.AdjacentBombs {
		return nil
	}
	return hidden
}

// RelocateBombAwayFrom は (row, col) の地雷を別のマスへ移し、移動先を返します
// 最初の一手で地雷を踏まないための救済です。(row, col) が地雷でなければ何もしません
//
// RelocateStrict では行も列も異なるマスから選びます。候補がない盤面
// (1行だけの盤面など) では RelocateAnyOther と同じ選び方に切り替えます
func (b *Board) RelocateBombAwayFrom(rng *rand.Rand, row, col int, policy RelocationPolicy) (Coord, bool) {
	if !b.InBounds(row, col) || !b.cells[b.index(row, col)].IsBomb {
		return Coord{}, false
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	candidates := b.relocationCandidates(row, col, policy)
	if len(candidates) == 0 && policy == RelocateStrict {
		candidates = b.relocationCandidates(row, col, RelocateAnyOther)
	}
	if len(candidates) == 0 {
		return Coord{}, false
	}
	target := candidates[rng.Intn(len(candidates))]

	b.cells[b.index(row, col)].IsBomb = false
	b.cells[b.index(target.Row, target.Col)].IsBomb = true
	b.recountAround(row, col)
	b.recountAround(target.Row, target.Col)

	return target, true
}

func (b *Board) relocationCandidates(row, col int, policy RelocationPolicy) []Coord {
	var out []Coord
	for i, c := range b.cells {
		if c.IsBomb || c.IsOpen {
			continue
		}
		p := b.coord(i)
		if p.Row == row && p.Col == col {
			continue
		}
		if policy == RelocateStrict && (p.Row == row || p.Col == col) {
			continue
		}
		out = append(out, p)
	}
	return out
}
