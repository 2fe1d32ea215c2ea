package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/dbgapdd/internal/cli"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(dbgap.ExitPanic)
		}
	}()

	if os.Getenv("DBGAPDD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(dbgap.ExitCodeForError(err))
	}
}
