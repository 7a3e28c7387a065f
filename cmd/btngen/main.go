// Command btngen compiles .dcx component files into Go builder code.
//
// Usage:
//
//	btngen generate [path...]    Generate Go code from .dcx files
//	btngen check [path...]       Check .dcx files without generating
//	btngen fmt [path...]         Format .dcx files
//	btngen expand component DSL  Expand a single snippet
//
// Examples:
//
//	btngen generate ./...        Recursively find and compile all .dcx files
//	btngen generate 'ui/**/*.dcx'
//	btngen check menu.dcx
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
