// Package app は newsum CLI のエントリポイントを提供する
package app

import "github.com/newsdigest/newsum/internal/cmd"

// Run executes the CLI application.
func Run() error {
	return cmd.Execute()
}

// HandleError returns an exit code for the given error.
func HandleError(err error) cmd.ExitCode {
	return cmd.HandleError(err)
}
