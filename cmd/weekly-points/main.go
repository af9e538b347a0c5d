package main

import (
	"os"

	"github.com/tyler180/fantasypros-weekly/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
