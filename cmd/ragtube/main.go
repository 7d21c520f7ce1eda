package main

import (
	"os"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
