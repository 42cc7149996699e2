package main

import (
	"fmt"
	"log"
	"os"

	"github.com/L31T1NH0/pixel-art-tools/internal/cli"
	"github.com/L31T1NH0/pixel-art-tools/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixel-art %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	// Logging goes to stderr so command output stays clean on stdout.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	args := os.Args[1:]

	cfg := config.Default()
	if len(args) >= 2 && args[0] == "-config" {
		loaded, err := config.Load(args[1])
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
		args = args[2:]
	}

	app := cli.New(cfg, os.Stdout)
	if err := app.Run(args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
