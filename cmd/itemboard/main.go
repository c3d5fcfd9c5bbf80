package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/itemboard/internal/cli"
	"github.com/rpggio/itemboard/internal/config"
	"github.com/rpggio/itemboard/internal/logfile"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred closes happen before os.Exit.
func run() int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	// The UI owns the terminal, so logs only go to a file when one is set.
	logWriter := io.Discard
	if cfg.LogPath != "" {
		fileWriter, err := logfile.Open(cfg.LogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, nil))

	root := cli.NewRootCommand(cli.Options{APIURL: cfg.APIURL, Logger: logger})
	return cli.Run(context.Background(), root)
}
