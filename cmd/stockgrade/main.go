package main

import (
	"os"
	_ "time/tzdata" // exchange time zones for chart dates

	"github.com/wonny/stockgrade/cmd/stockgrade/commands"
)

// main is the entry point for the stockgrade CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/stockgrade [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
