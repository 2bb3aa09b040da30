package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"example.com/rawedit/internal/app"
	"example.com/rawedit/internal/term"
	"example.com/rawedit/pkg/config"
	"example.com/rawedit/pkg/editor"
	"example.com/rawedit/pkg/logs"
	"github.com/spf13/cobra"
)

const defaultFile = "foo.txt"

// openTerminal and exitProcess are replaced in tests.
var (
	openTerminal = term.Open
	exitProcess  = os.Exit
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rawedit [file]",
		Short: "A minimal raw-mode terminal text editor",
		Long: `rawedit loads a text file into memory and edits it in the terminal.

Keys: Ctrl+N/P/F/B move, Enter splits the line, Backspace deletes,
Ctrl+Q or Ctrl+C quits. Edits are not written back to disk.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultFile
			if len(args) == 1 {
				path = args[0]
			}
			return run(path)
		},
	}
}

// run loads everything that can fail before touching the terminal, then
// holds the terminal for the lifetime of the editing loop.
func run(path string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logs.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer logger.Close()

	logger.Event("open.attempt", map[string]any{"file": path})
	ed, err := editor.LoadFile(path)
	if err != nil {
		logger.Error("open.error", err, map[string]any{"file": path})
		return err
	}
	logger.Event("open.success", map[string]any{"file": path, "lines": ed.Buffer.LineCount()})

	t, err := openTerminal(cfg.Backend)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer t.Close()
	stop := restoreOnSignal(t, logger)
	defer stop()

	r := app.New(t, ed)
	r.FilePath = path
	r.Keymap = cfg.Keymap
	r.Logger = logger
	return r.Run()
}

// restoreOnSignal puts the terminal back into cooked mode if the process is
// told to stop from outside. Raw mode turns Ctrl+C into a key, so this only
// fires for signals sent by other processes.
//
// The editing loop may be mid-write when the signal lands, so only Restore
// is called here: pending output is dropped rather than flushed from this
// goroutine. The logger is left open; each record is a single write to an
// unbuffered file and the process exits right after.
func restoreOnSignal(t term.Terminal, logger *logs.Logger) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			logger.Event("signal", map[string]any{"signal": sig.String()})
			_ = t.Restore()
			exitProcess(1)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
