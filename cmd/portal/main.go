package main

import (
	"os"

	"github.com/placement-portal/quiz-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
