// dread CLI - bind values into string templates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/randalmurphal/dread/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
