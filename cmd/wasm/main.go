//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/ynifamily3/minesweeper/lifecycle"
	"github.com/ynifamily3/minesweeper/viewmodel"
)

// GameSession はブラウザ側の1ゲームを保持します
type GameSession struct {
	game *lifecycle.Controller
}

var session = &GameSession{game: lifecycle.NewController()}

// NewGame は新しいゲームを開始します
// サイズや地雷数が不正なら今のゲームをそのまま返します
func (s *GameSession) NewGame(size, mineCount int) string {
	snap, err := s.game.Restart(size, mineCount)
	if err != nil {
		println("goNewGame:", err.Error())
	}
	return viewmodel.JSON(snap)
}

// Open は指定されたセルを開きます
func (s *GameSession) Open(row, col int) string {
	snap, _ := s.game.Open(row, col)
	return viewmodel.JSON(snap)
}

// ToggleFlag はフラグを切り替えます
func (s *GameSession) ToggleFlag(row, col int) string {
	snap, _ := s.game.ToggleFlag(row, col)
	return viewmodel.JSON(snap)
}

// Chord は数字マスの周りをまとめて開けます
func (s *GameSession) Chord(row, col int) string {
	snap, _ := s.game.ChordOpen(row, col)
	return viewmodel.JSON(snap)
}

// Reset はゲームを捨てます
func (s *GameSession) Reset() string {
	snap, _ := s.game.Reset()
	return viewmodel.JSON(snap)
}

func newGameWrapper(this js.Value, args []js.Value) interface{} {
	// デフォルト値
	size, m := 10, 10

	// 引数があれば上書き (JS側から goNewGame(size, mines) と呼ばれる想定)
	if len(args) >= 2 {
		size = args[0].Int()
		m = args[1].Int()
	}

	return session.NewGame(size, m)
}

// cellWrapper は (row, col) を受け取る関数を JS 向けに包みます
func cellWrapper(fn func(row, col int) string) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 2 {
			return nil
		}
		return fn(args[0].Int(), args[1].Int())
	})
}

func resetWrapper(this js.Value, args []js.Value) interface{} {
	return session.Reset()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("goNewGame", js.FuncOf(newGameWrapper))
	js.Global().Set("goOpenCell", cellWrapper(session.Open))
	js.Global().Set("goToggleFlag", cellWrapper(session.ToggleFlag))
	js.Global().Set("goChord", cellWrapper(session.Chord))
	js.Global().Set("goReset", js.FuncOf(resetWrapper))

	println("Go WebAssembly Initialized")
	<-c
}
