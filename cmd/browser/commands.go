package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Arun03Kumar/browser/pkg/html"
	"github.com/Arun03Kumar/browser/pkg/js"
	"github.com/Arun03Kumar/browser/pkg/page"
	"github.com/Arun03Kumar/browser/pkg/render"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (a *app) renderCommand() *cobra.Command {
	var (
		output string
		scroll float64
		full   bool
	)
	cmd := &cobra.Command{
		Use:   "render [url|path|-]",
		Short: "Render a page to a PNG image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPage(cmd, args)
			if err != nil {
				return err
			}
			height := a.cfg.Viewport.Height
			if full {
				if h := int(p.Layout().Height()); h > height {
					height = h
				}
				scroll = 0
			}
			r := render.NewRasterizer(a.cfg.Viewport.Width, height, nil)
			p.Paint(r, scroll)
			if err := r.SavePNG(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %dx%d to %s\n", r.Width(), r.Height(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "output.png", "output PNG file")
	cmd.Flags().Float64Var(&scroll, "scroll", 0, "vertical scroll offset in pixels")
	cmd.Flags().BoolVar(&full, "full", false, "grow the image to the full document height")
	return cmd
}

func (a *app) paintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paint [url|path|-]",
		Short: "Print the paint commands of a page as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPage(cmd, args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p.Commands())
		},
	}
}

func (a *app) treeCommand() *cobra.Command {
	var styles, diagnostics bool
	cmd := &cobra.Command{
		Use:   "tree [url|path|-]",
		Short: "Print the document tree, optionally with computed styles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPage(cmd, args)
			if err != nil {
				return err
			}
			p.Layout()
			out := cmd.OutOrStdout()
			printTree(out, p.Document().Root, 0, styles)
			if diagnostics {
				errOut := cmd.ErrOrStderr()
				for _, d := range p.Document().Diagnostics {
					fmt.Fprintf(errOut, "markup: %s\n", d)
				}
				for _, d := range p.StyleDiagnostics() {
					fmt.Fprintf(errOut, "style: %s\n", d)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&styles, "styles", false, "show computed styles")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "print parser diagnostics to stderr")
	return cmd
}

func printTree(w io.Writer, n *html.Node, depth int, styles bool) {
	indent := strings.Repeat("  ", depth)
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Text) != "" {
			fmt.Fprintf(w, "%s%s\n", indent, strconv.Quote(n.Text))
		}
		return
	}
	var sb strings.Builder
	sb.WriteString("<" + n.TagName)
	if n.Attributes != nil {
		for _, name := range n.Attributes.Names() {
			v, _ := n.Attributes.Get(name)
			fmt.Fprintf(&sb, " %s=%q", name, v)
		}
	}
	sb.WriteString(">")
	if styles && n.Style.Len() > 0 {
		sb.WriteString(" {" + n.Style.String() + "}")
	}
	fmt.Fprintf(w, "%s%s\n", indent, sb.String())
	for _, c := range n.Children {
		printTree(w, c, depth+1, styles)
	}
}

func (a *app) tokensCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the script tokens of a source file, -e text, or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := scriptSource(cmd, source, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range js.Tokenize(src) {
				fmt.Fprintf(out, "%4d  %s\n", tok.Pos, tok)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "expr", "e", "", "script text to tokenize")
	return cmd
}

func scriptSource(cmd *cobra.Command, expr string, args []string) (string, error) {
	if expr != "" {
		return expr, nil
	}
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading script: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func (a *app) evalCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "eval [url|path]",
		Short: "Evaluate script against an empty or loaded page and print the result",
		Long: "Evaluate script text given with -e, or read from stdin, in the context of the page at\n" +
			"url or path, or of an empty page. Console output and alerts are printed as they happen.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sinks := page.WithScriptOptions(
				js.WithConsole(func(level, message string) {
					if level == "log" {
						fmt.Fprintln(out, message)
						return
					}
					fmt.Fprintf(out, "%s: %s\n", level, message)
				}),
				js.WithAlert(func(message string) {
					fmt.Fprintf(out, "alert: %s\n", message)
				}),
			)

			src := source
			if src == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				src = string(data)
			}

			var (
				p   *page.Page
				err error
			)
			if len(args) == 1 {
				p, err = a.loadPage(cmd, args, sinks)
			} else {
				p, err = page.New(cmd.Context(), "", "", page.WithConfig(a.cfg), sinks)
			}
			if err != nil {
				return err
			}

			result, err := p.Engine().Exec(src)
			if err != nil {
				return err
			}
			p.RunTimers()
			if _, ok := result.(js.Undefined); !ok {
				fmt.Fprintln(out, js.ToString(result))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "expr", "e", "", "script text to evaluate")
	return cmd
}
