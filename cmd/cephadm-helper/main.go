package main

import (
	"os"

	"github.com/shuchitajnn/cephci/cmd/cephadm-helper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
