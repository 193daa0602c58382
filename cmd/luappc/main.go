// Command luappc is the luapp compiler's command-line front end.
package main

import (
	"fmt"
	"os"

	"github.com/lppc/luapp/cmd/luappc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
