package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/learnhub/learnhub"
)

func main() {
	configPath := flag.String("config", "", "Path to the TOML configuration file (optional)")
	flag.Parse()

	_, srv, err := learnhub.New(*configPath, learnhub.WithPhusLogger(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		os.Exit(1)
	}
}
