package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ynifamily3/minesweeper/lifecycle"
	"github.com/ynifamily3/minesweeper/viewmodel"
)

const playHelp = `commands:
  o ROW COL   open a cell
  f ROW COL   flag a cell
  u ROW COL   remove a flag
  c ROW COL   open the neighbors of a satisfied number
  n           start a new game
  r           reset to idle
  q           quit
`

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE:  runPlay,
	}
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return play(os.Stdin, cmd.OutOrStdout(), newController(cfg), cfg.Size, cfg.Bombs)
}

// play は1行ずつ命令を読み、操作のたびに盤面を書き出します
func play(in io.Reader, out io.Writer, c *lifecycle.Controller, size, bombs int) error {
	snap, err := c.Start(size, bombs)
	if err != nil {
		return err
	}
	fmt.Fprint(out, playHelp)
	fmt.Fprint(out, viewmodel.Text(snap))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q":
			return nil
		case "n":
			snap, err = c.Restart(size, bombs)
		case "r":
			snap, err = c.Reset()
		case "o", "f", "u", "c":
			row, col, perr := parseCoord(fields[1:])
			if perr != nil {
				fmt.Fprintln(out, perr)
				continue
			}
			snap, err = cellOp(c, fields[0])(row, col)
		default:
			fmt.Fprint(out, playHelp)
			continue
		}

		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
		fmt.Fprint(out, viewmodel.Text(snap))
	}
	return scanner.Err()
}

func cellOp(c *lifecycle.Controller, name string) func(row, col int) (lifecycle.Snapshot, error) {
	switch name {
	case "f":
		return c.Flag
	case "u":
		return c.Unflag
	case "c":
		return c.ChordOpen
	default:
		return c.Open
	}
}

func parseCoord(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("expected ROW COL")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid col %q", args[1])
	}
	return row, col, nil
}
