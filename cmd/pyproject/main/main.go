package main

import (
	"os"

	"github.com/arthur-debert/pyproject/cmd/pyproject"
)

func main() {
	os.Exit(pyproject.Execute())
}
