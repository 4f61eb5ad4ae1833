// Command punchsheet prints your Connecteam punch-clock timesheet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tmc/punchsheet/cmd/punchsheet/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "punchsheet:", err)
		os.Exit(1)
	}
}
