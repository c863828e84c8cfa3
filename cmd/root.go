package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/loadables/core/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// colorEnabled resolves a color mode against the stream diagnostics go to
// and configures fatih/color to match.
func colorEnabled(mode string, f *os.File) bool {
	var enabled bool
	switch mode {
	case config.ColorAlways:
		enabled = true
	case config.ColorNever:
		enabled = false
	default:
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	color.NoColor = !enabled
	return enabled
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loadables",
	Short: "Shell loadable builtins",
	Long:  `Loadable shell builtins and a playground shell to run them in.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
