package main

import (
	"context"
	"os"

	"git.home.luguber.info/inful/docpress/cmd/docpress/commands"
)

func main() {
	os.Exit(commands.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
