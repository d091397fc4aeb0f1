package main

import (
	"os"

	"github.com/ninjaquant/ninjata/tools/log"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("ninjata failed")
	}
}
