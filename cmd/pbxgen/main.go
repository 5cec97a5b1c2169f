// pbxgen generates Xcode project files from declarative manifests.
package main

import (
	"os"

	"github.com/hupe1980/pbxgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
