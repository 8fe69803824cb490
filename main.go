package main

import (
	"os"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
