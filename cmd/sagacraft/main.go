// SagaCraft runs JSON-defined text adventures with Lua mod support.
// Usage: sagacraft [flags] <world.json>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/sagacraft/sagacraft/cli"
	"github.com/sagacraft/sagacraft/engine"
	"github.com/sagacraft/sagacraft/engine/script"
	"github.com/sagacraft/sagacraft/internal/logging"
	"github.com/sagacraft/sagacraft/loader"
	"github.com/sagacraft/sagacraft/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		plain       = flag.Bool("plain", false, "use the plain CLI instead of the full-screen TUI")
		scriptFile  = flag.String("script", "", "play commands from a file (implies --plain, echoes input)")
		trace       = flag.Bool("trace", false, "enable debug logging")
		modsDir     = flag.String("mods", "", "directory of Lua mod scripts (default: mods/ beside the world file)")
		savesDir    = flag.String("saves", "", "directory for save slots (default: saves/ beside the world file)")
		logFile     = flag.String("log", "", "write engine logs to a rotating file instead of stderr")
		seed        = flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sagacraft %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sagacraft [flags] <world.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	worldPath := flag.Arg(0)
	worldDir := filepath.Dir(worldPath)

	w, err := loader.Load(worldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	log := logging.New(logging.Config{
		Debug:    *trace,
		FilePath: *logFile,
		Stderr:   *logFile == "" && *trace && (*plain || *scriptFile != ""),
	})

	eng := engine.New(w, engine.Options{Seed: *seed, Logger: log})

	// Lua mods load in lexical order from the mods directory, if any.
	mods := *modsDir
	if mods == "" {
		mods = filepath.Join(worldDir, "mods")
	}
	host := script.NewHost(w, eng.Bus)
	defer host.Close()
	if _, err := os.Stat(mods); err == nil {
		if err := host.LoadDir(mods); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading mods: %v\n", err)
			os.Exit(1)
		}
	}

	saves := *savesDir
	if saves == "" {
		saves = filepath.Join(worldDir, "saves")
	}

	// Script mode: open file, force plain, echo commands.
	if *scriptFile != "" {
		f, err := os.Open(*scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, saves)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use the plain CLI if requested or when stdout is not a terminal.
	if *plain || !isTerminal() {
		c := cli.New(eng, saves)
		c.Run()
		return
	}

	if err := tui.Run(eng, saves); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
