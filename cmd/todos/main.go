// Command todos manages a persistent todo list from the terminal.
package main

import (
	"os"

	"github.com/roach88/todos/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
