package main

import (
	"os"

	"github.com/LMDG1/LotteThesisMindSortCode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
