package main

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured JSON slog.Logger writing to w at level.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
