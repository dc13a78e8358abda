package main

import (
	"os"

	"github.com/llehouerou/mp3tagger/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
