// Package main provides a tool to pre-populate the local cache with the
// built-in datasets.
//
// Useful for demos and for resetting a development install to a known state
// without waiting for the server's seed fallback to kick in.
//
// Usage:
//
//	CACHE_PATH=~/Inkwell/cache go run ./cmd/seed
//	go run ./cmd/seed --cache-path /tmp/inkwell --wipe
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/seed"
)

var (
	cachePath = flag.String("cache-path", "", "Cache directory (defaults to $CACHE_PATH, then ~/Inkwell/cache)")
	wipe      = flag.Bool("wipe", false, "Delete stored view preferences as well")
)

func main() {
	flag.Parse()

	path := *cachePath
	if path == "" {
		path = os.Getenv("CACHE_PATH")
	}
	if path == "" {
		path = os.ExpandEnv("$HOME/Inkwell/cache")
	}

	fmt.Printf("Opening cache at: %s\n", path)

	c, err := cache.Open(path, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer c.Close()

	// Hydrate before writing so the cache holds exactly what the server
	// would publish from these records.
	books := seed.Books()
	for i := range books {
		domain.HydrateBook(&books[i])
	}
	collections := seed.Collections()
	for i := range collections {
		domain.HydrateCollection(&collections[i])
	}
	investigations := seed.Investigations()
	for i := range investigations {
		domain.HydrateInvestigation(&investigations[i])
	}

	datasets := []struct {
		key   string
		value any
		count int
	}{
		{"libros", books, len(books)},
		{"colecciones", collections, len(collections)},
		{"investigaciones", investigations, len(investigations)},
	}

	for _, d := range datasets {
		if err := c.Save(d.key, d.value); err != nil {
			log.Fatalf("Failed to write %s: %v", d.key, err)
		}
		fmt.Printf("Wrote %s (%d records)\n", d.key, d.count)
	}

	if *wipe {
		if err := c.Delete("preferencias"); err != nil {
			log.Fatalf("Failed to delete preferences: %v", err)
		}
		fmt.Println("Cleared view preferences")
	}

	fmt.Println("Done.")
}
