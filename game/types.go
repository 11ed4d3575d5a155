package game

import "errors"

var (
	// ErrInvalidSize は盤面の縦横が 1 未満のときに返されます
	ErrInvalidSize = errors.New("invalid board size")
	// ErrInvalidBombCount は地雷数が負、またはマス数以上のときに返されます
	ErrInvalidBombCount = errors.New("invalid bomb count")
)

// Coord は盤面上の位置 (行, 列) です
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell は1つのマスの情報を持ちます
type Cell struct {
	IsBomb        bool // 地雷かどうか
	IsOpen        bool // すでに開けられたか
	IsFlagged     bool // フラグが立てられているか
	AdjacentBombs int  // 周囲8マスにある地雷の数 (地雷マスにも格納される)
}

// Board はゲーム盤面全体を持ちます
// マスは行優先の1次元スライスで管理します (index = row*Cols + col)
type Board struct {
	Rows  int    // 縦のマス数
	Cols  int    // 横のマス数
	cells []Cell // 全マス
}

// RelocationPolicy は最初の一手で地雷を踏んだときの移動先の選び方です
type RelocationPolicy int

const (
	// RelocateStrict は行も列も異なるマスだけを移動先にします
	RelocateStrict RelocationPolicy = iota
	// RelocateAnyOther は自分以外の地雷でないマスならどこでも移動先にします
	RelocateAnyOther
)

func (p RelocationPolicy) String() string {
	switch p {
	case RelocateStrict:
		return "strict"
	case RelocateAnyOther:
		return "any"
	default:
		return "unknown"
	}
}

// ParseRelocationPolicy は "strict" / "any" を RelocationPolicy に変換します
func ParseRelocationPolicy(s string) (RelocationPolicy, error) {
	switch s {
	case "", "strict":
		return RelocateStrict, nil
	case "any":
		return RelocateAnyOther, nil
	default:
		return RelocateStrict, errors.New("unknown relocation policy: " + s)
	}
}

// 上 下 左 右 左上 右上 左下 右下
var neighborOffsets = [8]Coord{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}
