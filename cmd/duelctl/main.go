package main

import (
	"github.com/digitduel/digitduel/internal/cli"
)

func main() {
	cli.Execute()
}
