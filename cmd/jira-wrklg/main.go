package main

import (
	"os"

	"github.com/wrklg/jira-wrklg/app"
)

func main() {
	if err := app.Run(); err != nil {
		exitCode := app.HandleError(err)
		os.Exit(int(exitCode))
	}
}
