package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"tacitus-api/internal/config"
	"tacitus-api/internal/geocoder"
	"tacitus-api/internal/graceful"
	"tacitus-api/internal/repository"
	"tacitus-api/internal/service"
	"tacitus-api/internal/wikipedia"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	if err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// Run parses args, wires the location pipeline from configuration and executes the command.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("importer"),
		kong.Description("Manage stored locations from the command line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'importer --help' to see available commands")
	}
	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	config.SetupLogger(cfg, stderr)

	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("cannot open location store: %w", err)
	}
	defer store.Close()

	geo := geocoder.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent,
		geocoder.WithMinInterval(cfg.GeocoderMinInterval),
		geocoder.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
	)
	wiki := wikipedia.NewClient(cfg.WikipediaURL, cfg.WikipediaUserAgent, cfg.UpstreamTimeout)

	deps.Creator = service.NewContextResolver(store, geo, wiki, cfg.MatchTolerance)
	deps.Locations = service.NewLocationService(store)

	return kongCtx.Run(deps)
}
