package main

import (
	"os"

	"github.com/aexvir/allure/internal/cli"
)

// set at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	cli.Execute(version, os.Exit, os.Args[1:])
}
