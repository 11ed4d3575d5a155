package lifecycle

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ynifamily3/minesweeper/game"
)

// Controller は進行中の1ゲームを持ち、表示層からの操作を受け付けます
// 並行利用はできません。複数の goroutine から使う場合は呼び出し側で排他すること
type Controller struct {
	session Session
	opts    Options
	log     logrus.FieldLogger
}

// Option は Controller の設定です
type Option func(*Controller)

// WithRand は地雷の配置と移動に使う乱数を指定します
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.opts.Rand = rng }
}

// WithRelocation は最初の一手の救済ルールを指定します
func WithRelocation(p game.RelocationPolicy) Option {
	return func(c *Controller) { c.opts.Relocation = p }
}

// WithLogger はログの出力先を指定します
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController はアイドル状態の Controller を返します
func NewController(opts ...Option) *Controller {
	c := &Controller{session: NewSession()}
	for _, opt := range opts {
		opt(c)
	}
	if c.opts.Rand == nil {
		c.opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

// Start は size x size の盤面に bombs 個の地雷を置いてゲームを始めます
// 不正なサイズや地雷数は盤面を作る前に拒否されます
func (c *Controller) Start(size, bombs int) (Snapshot, error) {
	if c.session.State != Idle {
		return c.apply(Start{})
	}
	board, err := c.newBoard(size, bombs)
	if err != nil {
		return c.Snapshot(), err
	}
	return c.apply(Start{Board: board, TotalBombs: bombs})
}

// Restart は新しい盤面を用意してから今のゲームを捨て、始め直します
// 盤面を作れなければ今のゲームはそのまま残ります
func (c *Controller) Restart(size, bombs int) (Snapshot, error) {
	board, err := c.newBoard(size, bombs)
	if err != nil {
		return c.Snapshot(), err
	}
	if c.session.State != Idle {
		if _, err := c.apply(Reset{}); err != nil {
			return c.Snapshot(), err
		}
	}
	return c.apply(Start{Board: board, TotalBombs: bombs})
}

func (c *Controller) newBoard(size, bombs int) (*game.Board, error) {
	board, err := game.New(size)
	if err != nil {
		c.log.WithError(err).WithField("size", size).Warn("rejected board")
		return nil, err
	}
	if err := board.PlaceBombs(c.opts.Rand, bombs); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"size":  size,
			"bombs": bombs,
		}).Warn("rejected board")
		return nil, err
	}
	return board, nil
}

// StartBoard は用意済みの盤面でゲームを始めます (盤面はコピーされます)
func (c *Controller) StartBoard(board *game.Board, totalBombs int) (Snapshot, error) {
	return c.apply(Start{Board: board, TotalBombs: totalBombs})
}

// Open はマスを開けます
func (c *Controller) Open(row, col int) (Snapshot, error) {
	return c.apply(Open{At: game.Coord{Row: row, Col: col}})
}

// Flag はマスにフラグを立てます
func (c *Controller) Flag(row, col int) (Snapshot, error) {
	return c.apply(Flag{At: game.Coord{Row: row, Col: col}})
}

// Unflag はマスのフラグを外します
func (c *Controller) Unflag(row, col int) (Snapshot, error) {
	return c.apply(Unflag{At: game.Coord{Row: row, Col: col}})
}

// ToggleFlag はフラグの有無を切り替えます
func (c *Controller) ToggleFlag(row, col int) (Snapshot, error) {
	if c.session.Board != nil {
		if cell, ok := c.session.Board.Cell(row, col); ok && cell.IsFlagged {
			return c.Unflag(row, col)
		}
	}
	return c.Flag(row, col)
}

// ChordOpen は開いた数字マスの周りのフラグが揃っていれば、残りの周囲マスを開けます
func (c *Controller) ChordOpen(row, col int) (Snapshot, error) {
	var coords []game.Coord
	if c.session.Board != nil {
		coords = c.session.Board.ResolvableNeighbors(row, col)
	}
	return c.apply(OpenAdjacent{Coords: coords})
}

// Reset はゲームを捨ててアイドルに戻ります
func (c *Controller) Reset() (Snapshot, error) {
	return c.apply(Reset{})
}

// State は現在の状態を返します
func (c *Controller) State() State {
	return c.session.State
}

// Session は現在のコンテキストのコピーを返します
func (c *Controller) Session() Session {
	return c.session.clone()
}

// Snapshot は現在の表示用スナップショットを返します
func (c *Controller) Snapshot() Snapshot {
	return NewSnapshot(c.session)
}

func (c *Controller) apply(in Intent) (Snapshot, error) {
	log := c.log.WithFields(logrus.Fields{
		"intent": IntentName(in),
		"state":  c.session.State.String(),
	})

	next, eff, err := Transition(c.session, in, c.opts)
	if err != nil {
		log.WithError(err).Warn("intent rejected")
		return c.Snapshot(), err
	}
	c.session = next

	if eff.Relocated {
		log.WithField("to", eff.RelocatedTo).Debug("moved bomb away from first click")
	}
	log.WithFields(logrus.Fields{
		"opened":    len(eff.Opened),
		"detonated": eff.Detonated,
		"noop":      eff.Noop,
	}).Debug("intent applied")

	if eff.From != eff.To {
		c.log.WithFields(logrus.Fields{
			"session": next.ID.String(),
			"from":    eff.From.String(),
			"to":      eff.To.String(),
			"outcome": next.Outcome().String(),
			"moves":   next.Moves,
		}).Info("state changed")
	}
	return c.Snapshot(), nil
}
