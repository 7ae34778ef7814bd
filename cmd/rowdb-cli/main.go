package main

import (
	"os"

	"github.com/rowdb/rowdb/internal/cli"
	"github.com/rowdb/rowdb/pkg"
)

func main() {
	pkg.SetLogLevel(pkg.LogLevelErrOnly)
	if err := cli.NewRootCommand().Execute(); err != nil {
		pkg.ErrorLog(err)
		os.Exit(1)
	}
}
