// peo runs the peocoin node and the operational commands against its data directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/peocoin/go-peocoin/cmd"
	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/node"
)

var (
	version string
	commit  string
	branch  string
)

func main() { // run the app
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := node.GetCommand().Execute(); err != nil {
		var fatal *log.FatalError
		if errors.As(err, &fatal) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fatal.Code, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
