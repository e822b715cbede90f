package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/profile"

	. "github.com/cricklet/reversigo/internal/bitboards"
	"github.com/cricklet/reversigo/internal/config"
	"github.com/cricklet/reversigo/internal/console"
	"github.com/cricklet/reversigo/internal/game"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdConsoleMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}

	cfg, err := config.InitConfig()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	kinds := cfg.PlayerKinds()

	live := NewLiveLogger(os.Stdout)
	var logger Logger = live
	if cfg.Log.Quiet {
		logger = &SilentLogger
	}

	controller := session.NewController(
		session.WithLogger(logger),
		session.WithComputerPlayers(kinds[Black] == session.Computer, kinds[White] == session.Computer),
	)

	footer := NewFooterLogger(live, 0)
	controller.OnCounts().Subscribe(func(counts game.Counts) {
		footer.Printf("black %v white %v", counts.Black, counts.White)
	})
	status := NewFooterLogger(live, 1)
	controller.OnTurn().Subscribe(func(turn session.TurnState) {
		status.Printf("turn %v: %v (%v)", turn.TurnNumber, turn.ActiveColor, controller.PlayerKind(turn.ActiveColor))
	})

	c := console.NewConsole(controller)
	defer c.Stop()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := c.HandleInput(input)
		if !IsNil(err) {
			live.Println("error:", err)
			continue
		}
		for _, v := range result {
			live.Println(v)
		}
	}
}
