// main.go
//
// Minimal entry point that delegates CLI handling to the Cobra root command in cmd/taskbench/root.go

package main

import (
	cmd "github.com/taskbench/taskbench/cmd/taskbench"
)

func main() {
	cmd.Execute()
}
