// Command browser-view opens pages in a window. Clicks, typing and timers
// drive the page the way they would in a full browser.
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Arun03Kumar/browser/pkg/config"
	"github.com/Arun03Kumar/browser/pkg/logging"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string
	cmd := &cobra.Command{
		Use:          "browser-view [url|path]",
		Short:        "Open a page in a window",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			logging.InitializeLogger(cfg.Logger)
			defer logging.Sync()

			a := app.NewWithID("io.github.arun03kumar.browser")
			w := a.NewWindow("browser")
			vw := newViewer(cfg, w)
			if len(args) == 1 {
				vw.open(args[0])
			}
			w.ShowAndRun()
			vw.close()
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./browser.yaml)")
	flags.Int("width", 900, "viewport width in pixels")
	flags.Int("height", 700, "viewport height in pixels")
	flags.Bool("scripts", true, "run page scripts")
	_ = v.BindPFlag("viewport.width", flags.Lookup("width"))
	_ = v.BindPFlag("viewport.height", flags.Lookup("height"))
	_ = v.BindPFlag("script.enabled", flags.Lookup("scripts"))
	return cmd
}
