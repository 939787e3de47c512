// Command tinta-manpage writes the tinta(1) man page, or one page per
// subcommand into a directory when given one.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/tinta/internal/cli"
	"github.com/arthur-debert/tinta/internal/version"
)

func main() {
	root := cli.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "TINTA",
		Section: "1",
		Source:  "tinta " + version.Version,
		Manual:  "tinta manual",
	}

	var err error
	if len(os.Args) > 1 {
		if err = os.MkdirAll(os.Args[1], 0755); err == nil {
			err = doc.GenManTree(root, header, os.Args[1])
		}
	} else {
		err = doc.GenMan(root, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
