package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jacoelho/pm2http/internal/exit"
	"github.com/jacoelho/pm2http/internal/logging"
	"github.com/jacoelho/pm2http/internal/pm/config"
	"github.com/jacoelho/pm2http/internal/pm/files"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to load .env file: %v\n", err)
	}

	outcome := exit.Success(stderr)
	cmd := &cobra.Command{
		Use:   "pm2http",
		Short: "Convert Postman v2.1.0 collections into RestClient .http files",
		Long: `pm2http reads a Postman collection export and writes every request as a
RestClient block. Requests that cannot be converted are reported and left out
of the output; the rest of the collection still converts.

Every flag can also be set through a PM2HTTP_* environment variable, a .env
file in the working directory, or a config file passed with --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(cmd.Flags())
			if err != nil {
				return err
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			result, err := files.Run(*cfg, logger)
			if err != nil {
				return err
			}

			for _, failure := range result.Failures {
				fmt.Fprintf(stderr, "Skipped %s: %v\n", failure.Name, failure.Err)
			}

			if result.Diff != "" {
				if _, err := io.WriteString(stdout, result.Diff); err != nil {
					return fmt.Errorf("write diff: %w", err)
				}
			}

			if err := result.Summary.Write(stdout, cfg.ReportFormat); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			outcome = exit.Skipped(stderr, len(result.Failures), cfg.Strict)
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		outcome = exit.Errorf(stderr, "Error: %v\n", err)
	}

	outcome.Print()
	return outcome.ExitCode
}
