// Command server runs the dictionary synchronization HTTP API.
//
// Usage:
//
//	server [-config parla.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/parla-dictionary/internal/app"
	"github.com/heartmarshall/parla-dictionary/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.PathEnv+" or "+config.DefaultPath+")")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), config.Usage())
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, *configPath); err != nil {
		log.Fatalf("server: %v", err)
	}
}
