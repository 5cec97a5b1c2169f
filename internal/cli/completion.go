package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/pbxgen/internal/output"
)

// manifestExtensions are the file extensions manifest.Load can decode.
var manifestExtensions = []string{"yaml", "yml", "toml", "json"}

func newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pbxgen.

Once loaded, the manifest argument completes to .yaml, .yml, .toml and
.json files, --output completes to .xcodeproj bundles and .pbxproj
documents, and --format completes to the registered output formats:

  $ pbxgen generate <TAB>          # project.yaml  Demo.toml
  $ pbxgen generate project.yaml -o <TAB>   # App.xcodeproj

Bash:
  $ source <(pbxgen completion bash)

  # Persist for every session (Linux):
  $ pbxgen completion bash > /etc/bash_completion.d/pbxgen

Zsh:
  # compinit must be enabled once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ pbxgen completion zsh > "${fpath[1]}/_pbxgen"

Fish:
  $ pbxgen completion fish > ~/.config/fish/completions/pbxgen.fish

PowerShell:
  PS> pbxgen completion powershell | Out-String | Invoke-Expression
`,
		// Completion needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}

			return nil
		},
	}

	return cmd
}

// completeManifest completes the single manifest argument to decodable files.
func completeManifest(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return manifestExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeProjectPath completes an output location to a bundle or document.
func completeProjectPath(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"xcodeproj", "pbxproj"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats offers the given format names without file fallback.
func completeFormats(formats ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerOutputCompletion wires --output and --format completion on cmd.
// Formats default to the encoder registry.
func registerOutputCompletion(cmd *cobra.Command, formats ...string) {
	if len(formats) == 0 {
		formats = output.DefaultRegistry().Formats()
	}

	if cmd.Flags().Lookup("output") != nil {
		_ = cmd.RegisterFlagCompletionFunc("output", completeProjectPath)
	}

	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(formats...))
	}
}
