package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	coco "github.com/somucheffort/coco"
)

const (
	appName     = "coco"
	historyFile = ".coco_history"
	promptMain  = "> "
)

var errText = color.New(color.FgRed)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(coco.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`coco %s

Usage:
  %s run <file.co> [args...]   Run a script.
  %s repl                      Start the REPL.
  %s version                   Print the version.

Set COCO_DEBUG=1 for host-side diagnostics.
`, coco.Version, appName, appName, appName)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("COCO_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return coco.NewLogger(level)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.co> [args...]\n", appName)
		return 2
	}
	log := newLogger()

	file := args[0]
	coco.Argv = args[1:]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	log.Debug("loaded script", "path", file, "bytes", len(src))

	ip := coco.NewInterpreter()
	start := time.Now()
	_, err = ip.EvalSource(string(src))
	log.Debug("script finished", "path", file, "elapsed", time.Since(start))
	if err != nil {
		fmt.Fprintln(os.Stderr, errText.Sprint(err.Error()))
		return 1
	}
	return 0
}

func cmdRepl(_ []string) int {
	colorTerm := isatty.IsTerminal(os.Stdout.Fd())
	coco.EnableColor = colorTerm
	color.NoColor = !colorTerm

	fmt.Printf("coco %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", coco.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := coco.NewInterpreter()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, errText.Sprint(err.Error()))
			return 1
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, errText.Sprint(err.Error()))
			continue
		}
		fmt.Println(coco.FormatValue(v))
		ln.AppendHistory(code)
	}
}
