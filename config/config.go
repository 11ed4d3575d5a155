package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ynifamily3/minesweeper/game"
)

// Config はゲームとサーバーの設定です
type Config struct {
	Size       int    `json:"size"`       // 盤面の一辺
	MaxSize    int    `json:"max_size"`   // 新しいゲームで受け付ける一辺の上限
	Bombs      int    `json:"bombs"`      // 地雷数
	Addr       string `json:"addr"`       // HTTP の待ち受けアドレス
	StaticDir  string `json:"static_dir"` // 配信する静的ファイル (html, js, wasm)
	LogLevel   string `json:"log_level"`  // debug|info|warn|error
	Seed       int64  `json:"seed"`       // 0 なら時刻から決める
	Relocation string `json:"relocation"` // strict|any
}

// DefaultMaxSize は MaxSize の初期値です
const DefaultMaxSize = 100

// Default は初期設定を返します (10x10, 地雷10個)
func Default() Config {
	return Config{
		Size:       10,
		MaxSize:    DefaultMaxSize,
		Bombs:      10,
		Addr:       "0.0.0.0:8080",
		StaticDir:  "static",
		LogLevel:   "info",
		Relocation: game.RelocateStrict.String(),
	}
}

// Load は JSON ファイルを読み込みます。書かれていない項目は初期値のままです
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate は設定の矛盾をチェックします
func (c Config) Validate() error {
	if c.MaxSize < 1 {
		return fmt.Errorf("%w: max size %d", game.ErrInvalidSize, c.MaxSize)
	}
	if err := c.CheckSize(c.Size); err != nil {
		return err
	}
	if c.Bombs < 0 || c.Bombs >= c.Size*c.Size {
		return fmt.Errorf("%w: %d bombs on a %dx%d board", game.ErrInvalidBombCount, c.Bombs, c.Size, c.Size)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if _, err := game.ParseRelocationPolicy(c.Relocation); err != nil {
		return err
	}
	return nil
}

// CheckSize は一辺 size の盤面が 1 以上 MaxSize 以下かを確かめます
func (c Config) CheckSize(size int) error {
	if size < 1 || size > c.MaxSize {
		return fmt.Errorf("%w: size %d (max %d)", game.ErrInvalidSize, size, c.MaxSize)
	}
	return nil
}

// Policy は最初の一手の救済ルールを返します
func (c Config) Policy() game.RelocationPolicy {
	p, _ := game.ParseRelocationPolicy(c.Relocation)
	return p
}

// Rand は Seed で初期化した乱数を返します
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Logger は LogLevel を反映した logger を返します
func (c Config) Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}
	return l
}
