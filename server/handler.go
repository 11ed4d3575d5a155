package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ynifamily3/minesweeper/config"
	"github.com/ynifamily3/minesweeper/game"
	"github.com/ynifamily3/minesweeper/lifecycle"
	"github.com/ynifamily3/minesweeper/viewmodel"
)

// Server はゲームの状態とHTTPハンドラを管理します
// 1人用です。Controller への操作は mu で直列化します
type Server struct {
	mu   sync.Mutex
	game *lifecycle.Controller
	cfg  config.Config // 既定の盤面と一辺の上限
	log  logrus.FieldLogger
}

// NewServer はサーバーインスタンスを初期化し、cfg の盤面で最初のゲームを始めます
func NewServer(c *lifecycle.Controller, cfg config.Config, log logrus.FieldLogger) (*Server, error) {
	s := &Server{game: c, cfg: cfg, log: log}
	if _, err := s.StartNewGame(cfg.Size, cfg.Bombs); err != nil {
		return nil, err
	}
	return s, nil
}

// StartNewGame は新しいゲームを始めます
// 盤面を作れないときは進行中のゲームをそのまま残してエラーを返します
func (s *Server) StartNewGame(size, bombs int) (lifecycle.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.CheckSize(size); err != nil {
		return s.game.Snapshot(), err
	}
	return s.game.Restart(size, bombs)
}

// Response はクライアントへのレスポンスです
type Response struct {
	viewmodel.GameView
	Error string `json:"error,omitempty"`
}

// Handler は API のルーティングを返します
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return s.Wrap(mux)
}

// Register は mux に API を登録します
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/new", s.HandleNew)
	mux.HandleFunc("/api/state", s.HandleState)
	mux.HandleFunc("/api/reset", s.HandleReset)
	mux.HandleFunc("/api/open", s.cellHandler(s.game.Open))
	mux.HandleFunc("/api/flag", s.cellHandler(s.game.Flag))
	mux.HandleFunc("/api/unflag", s.cellHandler(s.game.Unflag))
	mux.HandleFunc("/api/toggle", s.cellHandler(s.game.ToggleFlag))
	mux.HandleFunc("/api/chord", s.cellHandler(s.game.ChordOpen))
}

// HandleNew はゲームリセットAPI (size, mines は省略可)
func (s *Server) HandleNew(w http.ResponseWriter, r *http.Request) {
	size, err := intParam(r, "size", s.cfg.Size)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err, s.snapshot())
		return
	}
	bombs, err := intParam(r, "mines", s.cfg.Bombs)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err, s.snapshot())
		return
	}

	snap, err := s.StartNewGame(size, bombs)
	s.reply(w, snap, err)
}

// HandleState は現在の盤面を返すAPI
func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	s.sendView(w, http.StatusOK, s.snapshot())
}

// HandleReset はゲームを捨ててアイドルに戻すAPI
func (s *Server) HandleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap, err := s.game.Reset()
	s.mu.Unlock()
	s.reply(w, snap, err)
}

// cellHandler は row, col を受け取る操作のハンドラを作ります
func (s *Server) cellHandler(op func(row, col int) (lifecycle.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := intParam(r, "row", -1)
		if err == nil && row < 0 {
			err = errors.New("row is required")
		}
		if err != nil {
			s.sendError(w, http.StatusBadRequest, err, s.snapshot())
			return
		}
		col, err := intParam(r, "col", -1)
		if err == nil && col < 0 {
			err = errors.New("col is required")
		}
		if err != nil {
			s.sendError(w, http.StatusBadRequest, err, s.snapshot())
			return
		}

		s.mu.Lock()
		snap, err := op(row, col)
		s.mu.Unlock()
		s.reply(w, snap, err)
	}
}

func (s *Server) snapshot() lifecycle.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Server) reply(w http.ResponseWriter, snap lifecycle.Snapshot, err error) {
	switch {
	case err == nil:
		s.sendView(w, http.StatusOK, snap)
	case errors.Is(err, lifecycle.ErrIllegalIntent):
		s.sendError(w, http.StatusConflict, err, snap)
	case errors.Is(err, game.ErrInvalidBombCount), errors.Is(err, game.ErrInvalidSize):
		s.sendError(w, http.StatusBadRequest, err, snap)
	default:
		s.sendError(w, http.StatusInternalServerError, err, snap)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, err error, snap lifecycle.Snapshot) {
	s.log.WithError(err).WithField("status", status).Debug("request failed")
	s.write(w, status, Response{GameView: viewmodel.NewGameView(snap), Error: err.Error()})
}

// sendView は現在の盤面状態をJSONで返します
func (s *Server) sendView(w http.ResponseWriter, status int, snap lifecycle.Snapshot) {
	s.write(w, status, Response{GameView: viewmodel.NewGameView(snap)})
}

func (s *Server) write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Warn("failed to encode response")
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + ": " + raw)
	}
	return v, nil
}

// statusWriter はレスポンスのステータスを記録します
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Wrap はリクエストごとにメソッド・パス・ステータス・所要時間をログに出します
func (s *Server) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
			"status": sw.status,
			"dur":    time.Since(start).Round(time.Microsecond),
		}).Info("http")
	})
}
