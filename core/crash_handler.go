package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
	crashLogger *zerolog.Logger
	crashExit   = os.Exit
)

// SetCrashScreen registers the screen finalized before a crash report is printed
func SetCrashScreen(screen tcell.Screen) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashScreen = screen
}

// SetCrashLogger registers a logger that also receives crash reports
func SetCrashLogger(logger zerolog.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashLogger = &logger
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	screen, logger := crashScreen, crashLogger
	crashScreen = nil
	crashMu.Unlock()

	stack := debug.Stack()

	// Restore terminal to sane state before writing to stderr
	if screen != nil {
		screen.Fini()
	}
	if logger != nil {
		logger.Error().Str("panic", fmt.Sprint(r)).Bytes("stack", stack).Msg("crash")
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
