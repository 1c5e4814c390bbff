package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pyproject/cmd/pyproject"
	"github.com/arthur-debert/pyproject/internal/version"
)

func main() {
	rootCmd := pyproject.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PYPROJECT",
		Section: "1",
		Source:  "pyproject " + version.Version,
		Manual:  "pyproject manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
