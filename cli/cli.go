// Package cli provides the plain terminal loop: prompt, dispatch,
// word-wrapped output, and slash meta-commands for saving and loading.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/sagacraft/sagacraft/engine"
	"github.com/sagacraft/sagacraft/engine/save"
)

// wrapWidth is the column the plain CLI wraps narrative text at.
const wrapWidth = 80

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo input lines, for script playback transcripts
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, saveDir string) *CLI {
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop: intro, starting room, then prompt →
// dispatch → output until EOF or quit.
func (c *CLI) Run() {
	if c.Engine.World.Title != "" {
		c.printLine(c.Engine.World.Title)
	}
	if c.Engine.World.Intro != "" {
		c.printLine(c.Engine.World.Intro)
		c.printLine("")
	}
	c.printLines(c.Engine.Look())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Comment lines, for script files.
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.printLines(c.Engine.ProcessCommand(input))
		if c.Engine.QuitRequested {
			return
		}
	}
}

// handleMeta dispatches slash commands. Returns true when the game
// should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printLine("Goodbye.")
		return true
	case "/save":
		c.cmdSave(arg)
	case "/load":
		c.cmdLoad(arg)
	case "/state":
		c.cmdState()
	case "/help":
		c.cmdHelp()
	default:
		c.printLine(fmt.Sprintf("Unknown meta-command %s. Try /help.", cmd))
	}
	return false
}

func (c *CLI) cmdSave(arg string) {
	if !c.Engine.World.AllowSave {
		c.printLine("Saving is disabled in this adventure.")
		return
	}
	slot := parseSlot(arg)
	c.printLines(c.Engine.NotifySaving())
	sd := save.Snapshot(c.Engine.World, c.Engine.RNG.Seed(), c.Engine.RNG.Position())
	if err := save.Write(c.SaveDir, slot, sd); err != nil {
		c.printLine("Save failed: " + err.Error())
		return
	}
	c.printLine(fmt.Sprintf("Saved to slot %d.", slot))
}

func (c *CLI) cmdLoad(arg string) {
	slot := parseSlot(arg)
	sd, err := save.Read(c.SaveDir, slot)
	if errors.Is(err, save.ErrNoSave) {
		c.printLine(fmt.Sprintf("No save in slot %d.", slot))
		return
	}
	if err != nil {
		c.printLine("Load failed: " + err.Error())
		return
	}
	save.Apply(c.Engine.World, sd)
	c.Engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	c.printLine(fmt.Sprintf("Loaded slot %d (%s).", slot, sd.Timestamp))
	c.printLines(c.Engine.NotifyLoaded())
	c.printLines(c.Engine.Look())
}

func (c *CLI) cmdState() {
	w := c.Engine.World
	c.printLine(fmt.Sprintf("Turn %d, room %d, health %d/%d, gold %d, party %d, flags %d",
		w.TurnCount, w.Player.CurrentRoom, w.Player.Health, w.Player.Hardiness,
		w.Player.Gold, len(w.Companions), len(w.Flags)))
}

func (c *CLI) cmdHelp() {
	c.printLine("Meta-commands: /save [slot], /load [slot], /state, /help, /quit")
	c.printLine("'again' or 'g' repeats the last command. Everything else goes to the game.")
	c.printLines(c.Engine.ShowHelp())
}

func parseSlot(arg string) int {
	if n, err := strconv.Atoi(arg); err == nil && n > 0 {
		return n
	}
	return 1
}

func (c *CLI) printLines(lines []string) {
	for _, l := range lines {
		c.printLine(l)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, wordwrap.String(text, wrapWidth))
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
