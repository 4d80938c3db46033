package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/jackielii/routedom/cmd/routedom/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
