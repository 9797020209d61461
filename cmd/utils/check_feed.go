package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/utils"
)

// Parses a feed script without running it and prints the commands it holds.
func main() {
	path := flag.String("feed", "", "feed file to check (default: built-in walkthrough)")
	flag.Parse()

	var r io.Reader = strings.NewReader(utils.DefaultFeed)
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open feed: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	commands, err := utils.NewFeedParser(logger.NewNopLogger()).Parse(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid feed: %v\n", err)
		os.Exit(1)
	}

	for _, cmd := range commands {
		fmt.Printf("%4d  %s\n", cmd.Line, cmd)
	}
	fmt.Printf("\n%d commands OK\n", len(commands))
}
