package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/fittrack/internal/app"
	"github.com/limbo/fittrack/internal/report"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
	jwtservice "github.com/limbo/fittrack/pkg/jwt_service"
	"github.com/spf13/cobra"
)

type appFunc func() *app.App

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.New("encoding output error: " + err.Error())
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseRange parses optional from and to days, falling back to the defaults.
func parseRange(from, to string, loc *time.Location, defFrom, defTo time.Time) (time.Time, time.Time, error) {
	start, end := defFrom, defTo
	var err error
	if from != "" {
		if start, err = dayutil.ParseDay(from, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		if end, err = dayutil.ParseDay(to, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

// readSamples accepts either a bare JSON array of samples or {"samples": [...]}.
func readSamples(data []byte) ([]entity.HealthSample, error) {
	var samples []entity.HealthSample
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := sonic.Unmarshal(trimmed, &samples); err != nil {
			return nil, errors.New("decoding samples error: " + err.Error())
		}
		return samples, nil
	}
	var wrapped struct {
		Samples []entity.HealthSample `json:"samples"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, errors.New("decoding samples error: " + err.Error())
	}
	return wrapped.Samples, nil
}

func today(loc *time.Location) time.Time {
	return dayutil.StartOfDay(time.Now().In(loc))
}

func migrateCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().Migrate()
		},
	}
}

func syncCmd(get appFunc) *cobra.Command {
	var day, from, to string
	var days int
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fill unset body metrics from ingested health samples",
		Long:  "Without flags the last AUTOSYNC_DAYS days up to today are synced. --day syncs one day, --from/--to sync an inclusive range.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get().Connect()
			ctx := cmd.Context()
			if day != "" {
				d, err := dayutil.ParseDay(day, a.Location)
				if err != nil {
					return err
				}
				outcome, err := a.Reconcile.ReconcileDay(ctx, d)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), outcome)
			}
			if from == "" && to == "" {
				if days <= 0 {
					days = a.Config.GetInt("AUTOSYNC_DAYS", 0)
				}
				syncReport, err := a.Reconcile.AutoSync(ctx, days)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), syncReport)
			}
			t := today(a.Location)
			start, end, err := parseRange(from, to, a.Location, t, t)
			if err != nil {
				return err
			}
			syncReport, err := a.Reconcile.ReconcileRange(ctx, start, end)
			if syncReport != nil {
				if printErr := printJSON(cmd.OutOrStdout(), syncReport); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "single day to sync (YYYY-MM-DD)")
	cmd.Flags().StringVar(&from, "from", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of the range, inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "auto sync window in days")
	cmd.MarkFlagsMutuallyExclusive("day", "from")
	cmd.MarkFlagsMutuallyExclusive("day", "to")
	return cmd
}

// addReportRange binds --from and --to with the last week as default.
func addReportRange(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "first day (YYYY-MM-DD), defaults to a week ago")
	cmd.Flags().StringVar(to, "to", "", "end day, exclusive (YYYY-MM-DD), defaults to tomorrow")
}

func reportRange(a *app.App, from, to string) (time.Time, time.Time, error) {
	t := today(a.Location)
	return parseRange(from, to, a.Location, dayutil.AddDays(t, -7), dayutil.NextDay(t))
}

func statsCmd(get appFunc) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Weight delta, average sleep and steps over a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get().Connect()
			start, end, err := reportRange(a, from, to)
			if err != nil {
				return err
			}
			stats, err := a.Stats.RangeStats(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
	addReportRange(cmd, &from, &to)
	return cmd
}

func reportCmd(get appFunc) *cobra.Command {
	var from, to, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a text report with a page per day and a stats page",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get().Connect()
			start, end, err := reportRange(a, from, to)
			if err != nil {
				return err
			}
			rep, err := a.Stats.Report(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			if out == "" {
				return report.Render(cmd.OutOrStdout(), rep)
			}
			f, err := os.Create(out)
			if err != nil {
				return errors.New("creating report file error: " + err.Error())
			}
			defer f.Close()
			return report.Render(f, rep)
		},
	}
	addReportRange(cmd, &from, &to)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file instead of stdout")
	return cmd
}

func insightsCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Weight change since the first record and over the last 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get().Connect()
			insights, err := a.Stats.Insights(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), insights)
		},
	}
}

func exportCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export every record into a new bundle folder under BACKUP_DIR",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get().Connect()
			result, err := a.Backup.Export(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func importCmd(get appFunc) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "import [bundle]",
		Short: "Replace every record with an exported bundle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get().Connect()
			var (
				n   int
				err error
			)
			switch {
			case key != "":
				n, err = a.Backup.ImportObject(cmd.Context(), key)
			case len(args) == 1:
				n, err = a.Backup.Import(cmd.Context(), args[0])
			default:
				return errors.New("bundle path or --s3-key is required")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d records\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "s3-key", "", "bundle folder or records key in BACKUP_S3_BUCKET")
	return cmd
}

func ingestCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <samples.json>",
		Short: "Load health samples exported from a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.New("reading samples file error: " + err.Error())
			}
			samples, err := readSamples(data)
			if err != nil {
				return err
			}
			a := get().Connect()
			n, err := a.Samples.Ingest(cmd.Context(), samples)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d samples\n", n)
			return nil
		},
	}
}

func tokenCmd(get appFunc) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := get().Config
			secret := cfg.GetString("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := jwtservice.New(secret, cfg.GetDuration("JWT_TTL", jwtservice.DefaultTokenTTL)).GenerateToken(owner)
			if err != nil {
				return errors.New("signing token error: " + err.Error())
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "owner", "name stored in the token")
	return cmd
}
