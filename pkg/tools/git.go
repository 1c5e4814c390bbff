package tools

import (
	"context"

	"github.com/arthur-debert/pyproject/pkg/runner"
)

// Git drives the git executable
type Git struct {
	bin    string
	runner runner.CommandRunner
}

// NewGit creates a client for the git executable at bin
func NewGit(bin string, r runner.CommandRunner) *Git {
	if bin == "" {
		bin = "git"
	}
	return &Git{bin: bin, runner: r}
}

// InitInvocation is `git init <dir>`
func (g *Git) InitInvocation(dir string) runner.Invocation {
	return runner.Command(g.bin, "init", dir)
}

// Init creates an empty repository in dir
func (g *Git) Init(ctx context.Context, dir string) (runner.Result, error) {
	return runner.RunChecked(ctx, g.runner, g.InitInvocation(dir))
}
