// cmd/tide-rebase/main.go
package main

import (
	"os"

	"github.com/bethropolis/tide-rebase/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
