package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/config"
	"github.com/Arun03Kumar/browser/pkg/logging"
	"github.com/Arun03Kumar/browser/pkg/page"
)

// app holds what every subcommand shares once the root has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "browser",
		Short:         "A miniature browser engine: parse, style, script, lay out and paint",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.InitializeLogger(cfg.Logger)
			logging.L().Debug("configuration loaded",
				zap.Int("width", cfg.Viewport.Width),
				zap.Int("height", cfg.Viewport.Height),
				zap.Bool("scripts", cfg.Script.Enabled))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./browser.yaml)")
	flags.Int("width", 900, "viewport width in pixels")
	flags.Int("height", 700, "viewport height in pixels")
	flags.Bool("scripts", true, "run page scripts")
	flags.String("user-css", "", "user stylesheet file, applied after page styles")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	for key, name := range map[string]string{
		"viewport.width":      "width",
		"viewport.height":     "height",
		"script.enabled":      "scripts",
		"style.user_css_file": "user-css",
		"logger.level":        "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		a.renderCommand(),
		a.paintCommand(),
		a.treeCommand(),
		a.tokensCommand(),
		a.evalCommand(),
	)
	return root
}

// loadPage builds a page from the URL or path in args, or from markup on
// stdin when args is empty or "-". Pending timers are run so the result
// reflects the page once it settles.
func (a *app) loadPage(cmd *cobra.Command, args []string, opts ...page.Option) (*page.Page, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append([]page.Option{page.WithConfig(a.cfg)}, opts...)

	var (
		p   *page.Page
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		var markup []byte
		markup, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		p, err = page.New(ctx, string(markup), "", opts...)
	} else {
		p, err = page.Load(ctx, args[0], opts...)
	}
	if err != nil {
		return nil, err
	}
	for _, err := range p.ScriptErrors() {
		logging.L().Warn("script error", zap.Error(err))
	}
	p.RunTimers()
	return p, nil
}
