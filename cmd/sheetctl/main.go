package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"smartsheetsvc/adapters/cache"
	"smartsheetsvc/adapters/excel"
	"smartsheetsvc/adapters/smartsheet"
	"smartsheetsvc/app"
	"smartsheetsvc/domain/records"
	"smartsheetsvc/internal"
	"smartsheetsvc/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sheetctl",
		Short:         "Inspect the Smartsheet sheets served by the smartsheet service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(
		newFetchCmd(),
		newParseCmd(),
		newProjectNamesCmd(),
		newCacheCmd(),
	)
	return rootCmd
}

func newFetchCmd() *cobra.Command {
	var projectName, subproject, protocolName, subjectID, xlsxPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "fetch [funding|protocols|perfusions]",
		Short: "Fetch a sheet and print its records as JSON",
		Long: `Fetch one of the configured sheets from Smartsheet, parse it and print the
records. Filters behave like the HTTP query parameters.

Reads SMARTSHEET_ACCESS_TOKEN and the SMARTSHEET_*_ID variables.

Example: sheetctl fetch perfusions --subject-id 689418`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"funding", "protocols", "perfusions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLiveService(strict)
			if err != nil {
				return err
			}
			flag := func(name, value string) *string {
				if cmd.Flags().Changed(name) {
					return &value
				}
				return nil
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "funding":
				recs, err := svc.Funding(ctx, flag("project-name", projectName), flag("subproject", subproject))
				if err != nil {
					return err
				}
				return emit(out, "funding", recs, xlsxPath)
			case "protocols":
				recs, err := svc.Protocols(ctx, flag("protocol-name", protocolName))
				if err != nil {
					return err
				}
				return emit(out, "protocols", recs, xlsxPath)
			case "perfusions":
				recs, err := svc.Perfusions(ctx, flag("subject-id", subjectID))
				if err != nil {
					return err
				}
				return emit(out, "perfusions", recs, xlsxPath)
			default:
				return fmt.Errorf("unknown sheet %q (use funding, protocols or perfusions)", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&projectName, "project-name", "", "Funding project name filter")
	cmd.Flags().StringVar(&subproject, "subproject", "", "Funding subproject filter")
	cmd.Flags().StringVar(&protocolName, "protocol-name", "", "Protocol name filter")
	cmd.Flags().StringVar(&subjectID, "subject-id", "", "Perfusion subject id filter")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel workbook to this path instead of printing JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first row that does not validate")

	return cmd
}

func newProjectNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project-names",
		Short: "Print the distinct funding project names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLiveService(false)
			if err != nil {
				return err
			}
			names, err := svc.ProjectNames(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCacheCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the SQL sheet cache",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Cache database URL (default $CACHE_DATABASE_URL)")

	open := func(cmd *cobra.Command) (*cache.SQLStore, error) {
		url := databaseURL
		if url == "" {
			url = os.Getenv("CACHE_DATABASE_URL")
		}
		if url == "" {
			return nil, fmt.Errorf("no cache database: set --database-url or CACHE_DATABASE_URL")
		}
		return cache.OpenSQLStore(cmd.Context(), url)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the sheet_cache table if it does not exist",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := open(cmd)
				if err != nil {
					return err
				}
				defer store.Close()
				fmt.Fprintln(cmd.OutOrStdout(), "cache schema is up to date")
				return nil
			},
		},
		&cobra.Command{
			Use:   "purge",
			Short: "Delete expired cache entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := open(cmd)
				if err != nil {
					return err
				}
				defer store.Close()
				n, err := store.PurgeExpired(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired entries\n", n)
				return nil
			},
		},
	)
	return cmd
}

func newParseCmd() *cobra.Command {
	var schema string
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse [sheet.json]",
		Short: "Parse a saved sheet payload offline",
		Long: `Parse a sheet JSON payload from disk with one of the record schemas and print
the records. Rows that fail validation are reported on stderr in lenient mode.

Example: sheetctl parse funding.json --schema funding --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			switch schema {
			case "funding":
				return runParse[records.FundingModel](cmd, raw, strict)
			case "protocols":
				return runParse[records.ProtocolsModel](cmd, raw, strict)
			case "perfusions":
				return runParse[records.PerfusionsModel](cmd, raw, strict)
			default:
				return fmt.Errorf("unknown schema %q (use funding, protocols or perfusions)", schema)
			}
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "funding", "Record schema: funding, protocols or perfusions")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first row that does not validate")

	return cmd
}

func runParse[T any](cmd *cobra.Command, raw []byte, strict bool) error {
	outcomes, err := records.ParseSheet[T](raw, strict)
	if err != nil {
		return err
	}
	for _, degraded := range records.Degraded(outcomes) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: row %d not validated: %v\n", degraded.RowNumber, degraded)
	}
	return printJSON(cmd.OutOrStdout(), records.Records(outcomes))
}

func newLiveService(strict bool) (*app.SheetService, error) {
	cfg, err := config.LoadSmartsheet()
	if err != nil {
		return nil, err
	}
	logger := internal.NewDefaultLogger()
	client := smartsheet.NewClient(smartsheet.Config{
		BaseURL:        cfg.BaseURL,
		AccessToken:    cfg.AccessToken,
		UserAgent:      cfg.UserAgent,
		MaxConnections: cfg.MaxConnections,
		Timeout:        cfg.Timeout,
	}, logger)
	return app.NewSheetService(client, app.SheetIDs{
		Funding:    cfg.FundingID,
		Protocols:  cfg.ProtocolsID,
		Perfusions: cfg.PerfusionsID,
	}, strict || cfg.Strict, logger), nil
}

func emit[T any](out io.Writer, name string, recs []T, xlsxPath string) error {
	if xlsxPath == "" {
		return printJSON(out, recs)
	}
	f, err := os.Create(xlsxPath)
	if err != nil {
		return err
	}
	if err := excel.WriteRecords(f, name, recs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d %s records to %s\n", len(recs), name, xlsxPath)
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
