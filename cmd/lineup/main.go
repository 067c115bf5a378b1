package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aliabb01/lineup/internal/cli"
	"github.com/aliabb01/lineup/internal/config"
	"github.com/aliabb01/lineup/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	store := flag.String("store", "", "path to the list file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *store != "" {
		cfg.Store = *store
	}
	if cfg.Theme == "" {
		cfg.Theme = "classic"
	}
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{Store: cfg.Store})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
