package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pandablocks/pandad/internal/database"
)

// openSources opens config and registers (required) and description
// (optional) from dir, returning a database.Sources ready for Load and
// a func that closes every opened file.
func openSources(dir string) (database.Sources, func(), error) {
	config, err := os.Open(filepath.Join(dir, "config"))
	if err != nil {
		return database.Sources{}, nil, fmt.Errorf("open config: %w", err)
	}
	registers, err := os.Open(filepath.Join(dir, "registers"))
	if err != nil {
		config.Close()
		return database.Sources{}, nil, fmt.Errorf("open registers: %w", err)
	}

	src := database.Sources{Config: config, Registers: registers}
	closers := []*os.File{config, registers}

	if desc, err := os.Open(filepath.Join(dir, "description")); err == nil {
		src.Description = desc
		closers = append(closers, desc)
	}

	return src, func() {
		for _, f := range closers {
			f.Close()
		}
	}, nil
}
