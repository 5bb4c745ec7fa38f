package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/soocke/pagegrab-go/app/gui"
	"github.com/soocke/pagegrab-go/cmd"
)

const version = "0.3.0"

func main() {
	// Logs go to stderr so stdout stays readable for the command output.
	root := cmd.NewRootCmd(func(level slog.Leveler) *slog.Logger {
		return NewLogger(os.Stderr, level)
	}, gui.Run)
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
