package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/config"
)

// registerGenerationFlags adds the flags that shape the generated document.
// They are bound into the configuration, so the values are read back from
// config.FromContext rather than from variables.
func registerGenerationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("object-version", config.DefaultObjectVersion, "objectVersion when the manifest sets no compatibility")
	f.Bool("check-references", true, "fail when an identifier names an object that is never written")
}
