package main

import (
	"os"

	"github.com/newsdigest/newsum/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(int(app.HandleError(err)))
	}
}
