package main

import (
	"os"

	"github.com/go-lilac/lilac/cmd/lilac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
