package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/RobertsLab/polyIC-larvae/internal/batch"
	"github.com/RobertsLab/polyIC-larvae/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes. A run that measured nothing is distinguished from a setup or
// usage error.
const (
	exitError          = 1
	exitNoMeasurements = 2
)

func main() {
	root := cli.NewRootCmd(cli.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		if errors.Is(err, batch.ErrNoMeasurements) {
			os.Exit(exitNoMeasurements)
		}
		os.Exit(exitError)
	}
}
