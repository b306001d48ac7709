package main

import (
	"fmt"
	"os"

	"github.com/gartstein/recruitment/internal/recruitment/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
