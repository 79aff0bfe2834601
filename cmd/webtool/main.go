// Command webtool drives headless Chromium through Playwright for quick
// web lookups: search, screenshots, text and markup extraction, and a
// structural page summary. Every command prints a JSON document to
// stdout.
//
// The first run downloads the browser driver; afterwards a local
// Chromium install is reused.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/entrhq/cloudtools/pkg/browser"
	"github.com/entrhq/cloudtools/pkg/config"
	"github.com/entrhq/cloudtools/pkg/dispatch"
	"github.com/entrhq/cloudtools/pkg/logging"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Config file path (default ~/.cloudtools/config.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("webtool v%s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}

	logger, _ := logging.New("webtool")
	defer logger.Close()

	table := commandTable(cfg, logger)

	args := flag.Args()
	if len(args) == 0 {
		dispatch.PrintUsage(table, "webtool", os.Stdout)
		return
	}

	logger.Infof("dispatching %q", args[0])
	if err := dispatch.Dispatch(table, args[0], args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Errorf("command %s failed: %v", args[0], err)
	}
}

func browserOptions(cfg config.Config) browser.Options {
	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}
	return browser.Options{
		Headless: headless,
		Viewport: browser.Viewport{
			Width:  cfg.Browser.Viewport.Width,
			Height: cfg.Browser.Viewport.Height,
		},
		TimeoutMS: cfg.Browser.TimeoutMS,
		TextLimit: cfg.Browser.TextLimit,
		HTMLLimit: cfg.Browser.HTMLLimit,
	}
}

func commandTable(cfg config.Config, logger *logging.Logger) dispatch.Table {
	// run starts the Playwright driver, performs one operation in a
	// fresh session, prints the resulting document, and shuts the driver
	// down again. One command per process, so nothing is cached.
	run := func(op func(m *browser.Manager) (interface{}, error)) error {
		manager, err := browser.NewManager(browserOptions(cfg))
		if err != nil {
			return err
		}
		defer manager.Close()

		doc, err := op(manager)
		if err != nil {
			return err
		}

		rendered, err := browser.RenderJSON(doc)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	return dispatch.Table{
		{
			Name: "search", Usage: "search <query...>", MinArgs: 1,
			Run: func(args []string) error {
				query := strings.Join(args, " ")
				logger.Infof("search: %s", query)
				return run(func(m *browser.Manager) (interface{}, error) {
					return m.Search(query)
				})
			},
		},
		{
			Name: "screenshot", Usage: "screenshot <url> <output_path>", MinArgs: 2,
			Run: func(args []string) error {
				return run(func(m *browser.Manager) (interface{}, error) {
					return m.TakeScreenshot(args[0], args[1])
				})
			},
		},
		{
			Name: "get_text", Usage: "get_text <url>", MinArgs: 1,
			Run: func(args []string) error {
				return run(func(m *browser.Manager) (interface{}, error) {
					return m.GetText(args[0])
				})
			},
		},
		{
			Name: "get_html", Usage: "get_html <url>", MinArgs: 1,
			Run: func(args []string) error {
				return run(func(m *browser.Manager) (interface{}, error) {
					return m.GetHTML(args[0])
				})
			},
		},
		{
			Name: "click_extract", Usage: "click_extract <url> <click_selector> <extract_selector>", MinArgs: 3,
			Run: func(args []string) error {
				return run(func(m *browser.Manager) (interface{}, error) {
					return m.ClickExtract(args[0], args[1], args[2])
				})
			},
		},
		{
			Name: "analyze", Usage: "analyze <url>", MinArgs: 1,
			Run: func(args []string) error {
				return run(func(m *browser.Manager) (interface{}, error) {
					return m.Analyze(args[0])
				})
			},
		},
	}
}
