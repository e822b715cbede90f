package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"

	"github.com/cricklet/reversigo/internal/game"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/moves"
	"github.com/cricklet/reversigo/internal/perft"
)

// usage: perft [profile] <depth> [position]
func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdPerftMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: perft [profile] <depth> [position]")
		os.Exit(1)
	}

	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		fmt.Fprintln(os.Stderr, "invalid depth:", args[0])
		os.Exit(1)
	}

	position := game.OpeningPosition
	if len(args) > 1 {
		var perr Error
		position, perr = game.PositionFromString(strings.Join(args[1:], " "))
		if !IsNil(perr) {
			fmt.Fprintln(os.Stderr, perr)
			os.Exit(1)
		}
	}

	fmt.Println(position.Board)

	start := time.Now()
	roots := MaxInt(len(moves.LegalMoves(position.Board, position.Player)), 1)
	bar := CreateProgressBar(os.Stdout, roots, fmt.Sprintf("perft %v", depth))
	results := perft.Divide(position.Board, position.Player, depth, func(r perft.DivideResult) {
		bar.Add(1)
	})
	bar.Close()

	for _, r := range results {
		name := r.Move.String()
		if r.Move == perft.PassCell {
			name = "pass"
		}
		fmt.Printf("%v: %v\n", name, humanize.Comma(int64(r.Leaves)))
	}
	total := perft.Total(results)
	elapsed := time.Since(start)
	fmt.Printf("total %v in %v (%v/s)\n",
		humanize.Comma(int64(total)), elapsed.Round(time.Millisecond),
		humanize.Comma(int64(float64(total)/elapsed.Seconds())))
}
