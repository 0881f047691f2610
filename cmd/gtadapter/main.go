// Command gtadapter inspects and resolves per-executable Google Test
// settings.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/gtadapter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
