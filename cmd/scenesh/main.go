// Command scenesh is an interactive shell for loading and rendering
// scene files: a Command table keyed by symbol and aliases, readline
// history persisted under $HOME, applied to the scene text format.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	rt "github.com/elh/go-raytracer"
	"github.com/elh/go-raytracer/internal/ppm"
	"github.com/elh/go-raytracer/internal/sceneio"
)

// Command is one shell command: a symbol, its aliases, and its handler.
type Command struct {
	Symbol       string
	Aliases      []string
	ExpectedArgs []string
	HelpText     string
	Run          func(*State) error
}

// State is the shell's mutable session state: the currently loaded scene.
type State struct {
	args  []string
	scene *rt.Scene
	file  string
}

var errQuit = errors.New("quit")

func main() {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "scene> ",
		HistoryFile:  historyFilePath(),
		HistoryLimit: 10000,
	})
	if err != nil {
		log.Fatalf("readline init error: %v", err)
	}

	state := &State{}
	_, lookup := buildCommands()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("readline error: %v", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line[0] != ':' {
			fmt.Println("enter a command (:help for a list), or :load <file> to load a scene")
			continue
		}

		args := strings.Fields(line)
		cmd := lookup[args[0]]
		if cmd == nil {
			fmt.Printf("unknown command: %s\n", args[0])
			continue
		}
		state.args = args[1:]
		err = cmd.Run(state)
		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func buildCommands() ([]*Command, map[string]*Command) {
	var commands []*Command
	lookup := make(map[string]*Command)

	register := func(c *Command) {
		commands = append(commands, c)
		lookup[c.Symbol] = c
		for _, alias := range c.Aliases {
			lookup[alias] = c
		}
	}

	register(&Command{
		Symbol:       ":load",
		Aliases:      []string{":l"},
		ExpectedArgs: []string{"<filename>"},
		HelpText:     "Load a scene file",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :load <filename>")
			}
			f, err := os.Open(st.args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			scene, diags, err := sceneio.Load(f)
			if err != nil {
				return err
			}
			for _, d := range diags {
				fmt.Printf("warning: %s\n", d)
			}
			st.scene = scene
			st.file = st.args[0]
			fmt.Printf("loaded %s: %d objects, %d lights\n", st.file, len(scene.Objects), len(scene.Lights))
			return nil
		},
	})
	register(&Command{
		Symbol:   ":info",
		Aliases:  []string{":i"},
		HelpText: "Print the currently loaded scene",
		Run: func(st *State) error {
			if st.scene == nil {
				return errors.New("no scene loaded, use :load <filename>")
			}
			fmt.Printf("file: %s\n", st.file)
			fmt.Printf("objects: %d\n", len(st.scene.Objects))
			fmt.Printf("lights: %d\n", len(st.scene.Lights))
			fmt.Printf("camera: %v\n", st.scene.Camera != nil)
			fmt.Printf("background: %v\n", &st.scene.Background)
			return nil
		},
	})
	register(&Command{
		Symbol:       ":render",
		Aliases:      []string{":r"},
		ExpectedArgs: []string{"<out.ppm>", "[width]", "[height]", "[samples]"},
		HelpText:     "Render the loaded scene to a PPM file",
		Run: func(st *State) error {
			if st.scene == nil {
				return errors.New("no scene loaded, use :load <filename>")
			}
			if len(st.args) < 1 {
				return errors.New("usage: :render <out.ppm> [width] [height] [samples]")
			}
			if st.scene.Camera == nil {
				return errors.New("scene has no camera")
			}
			width, height, samples := 640, 360, rt.DefaultSamplesPerPixel
			var err error
			if len(st.args) > 1 {
				if width, err = strconv.Atoi(st.args[1]); err != nil {
					return err
				}
			}
			if len(st.args) > 2 {
				if height, err = strconv.Atoi(st.args[2]); err != nil {
					return err
				}
			}
			if len(st.args) > 3 {
				if samples, err = strconv.Atoi(st.args[3]); err != nil {
					return err
				}
			}

			grid := rt.Render(st.scene, rt.RenderOptions{
				Width: width, Height: height, SamplesPerPixel: samples, Seed: rt.DefaultSeed,
			})
			out, err := os.Create(st.args[0])
			if err != nil {
				return err
			}
			defer out.Close()
			if err := ppm.Write(out, ppm.FromRenderGrid(grid)); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", st.args[0])
			return nil
		},
	})
	register(&Command{
		Symbol:   ":help",
		Aliases:  []string{":h"},
		HelpText: "Prints this help text",
		Run: func(st *State) error {
			maxLen := 0
			usage := make([]string, len(commands))
			for i, c := range commands {
				parts := append([]string{c.Symbol}, c.Aliases...)
				parts = append(parts, c.ExpectedArgs...)
				usage[i] = strings.Join(parts, " ")
				if len(usage[i]) > maxLen {
					maxLen = len(usage[i])
				}
			}
			for i, c := range commands {
				fmt.Printf("  %-*s : %s\n", maxLen, usage[i], c.HelpText)
			}
			return nil
		},
	})
	register(&Command{
		Symbol:   ":quit",
		Aliases:  []string{":q"},
		HelpText: "Exit the shell",
		Run: func(st *State) error {
			return errQuit
		},
	})

	return commands, lookup
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("user home dir error: %v\n", err)
		return ""
	}
	return filepath.Join(home, ".scenesh_history")
}
