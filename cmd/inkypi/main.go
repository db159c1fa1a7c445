package main

import (
	"log/slog"
	"os"
	"time"

	"gitlab.com/greyxor/slogor"

	"github.com/arkottke/InkyPi/tile"
)

func main() {
	logger := slog.New(slogor.NewHandler(os.Stderr,
		slogor.SetLevel(slog.LevelInfo),
		slogor.SetTimeFormat(time.DateTime),
	))
	slog.SetDefault(logger)
	tile.SetLogger(logger)

	Execute()
}
