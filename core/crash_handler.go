package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// CrashHook runs before the crash report is printed, used by front-ends to restore the terminal
type CrashHook func()

var crashHook atomic.Pointer[CrashHook]

// SetCrashHook installs the hook invoked by HandleCrash, nil clears it
func SetCrashHook(hook CrashHook) {
	if hook == nil {
		crashHook.Store(nil)
		return
	}
	crashHook.Store(&hook)
}

// HandleCrash is the unified panic handler that runs the crash hook and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if hook := crashHook.Load(); hook != nil {
		(*hook)()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
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
