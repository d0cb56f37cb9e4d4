package main

import (
	"fmt"
	"os"

	"github.com/HighPriest/ob-daily-summary/internal/doctor"
	"github.com/HighPriest/ob-daily-summary/internal/history"
	"github.com/HighPriest/ob-daily-summary/internal/report"
	settingscmd "github.com/HighPriest/ob-daily-summary/internal/settings"
	"github.com/HighPriest/ob-daily-summary/pkg/help"
	"github.com/urfave/cli/v2"
)

const version = "0.3.0"

// reportFlags are shared by the generate and previous commands.
func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "vault",
			Value:   ".",
			Usage:   "vault directory to scan for notes",
			EnvVars: []string{"OBDS_VAULT"},
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 4,
			Usage: "number of concurrent note readers",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "print the assembled prompt instead of calling the API",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "only log errors",
		},
	}
}

func main() {
	app := &cli.App{
		Name:    "ob-daily-summary",
		Usage:   "summarize the day's vault notes into a dated report",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "generate today's daily report",
				Flags:  reportFlags(),
				Action: report.GenerateAction,
			},
			{
				Name:  "previous",
				Usage: "generate the report for a past day",
				Flags: append(reportFlags(), &cli.IntFlag{
					Name:  "days",
					Value: 1,
					Usage: "how many days back (1-30)",
				}),
				Action: report.PreviousAction,
			},
			{
				Name:      "history",
				Usage:     "list past runs, or show one run in detail",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum runs to list (0 for all)",
					},
				},
				Action: history.HistoryAction,
			},
			{
				Name:  "settings",
				Usage: "inspect and change stored settings",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "print every setting (API key masked)",
						Action: settingscmd.ListAction,
					},
					{
						Name:      "get",
						Usage:     "print one setting",
						ArgsUsage: "<key>",
						Action:    settingscmd.GetAction,
					},
					{
						Name:      "set",
						Usage:     "update one setting",
						ArgsUsage: "<key> <value>",
						Action:    settingscmd.SetAction,
					},
				},
			},
			{
				Name:  "doctor",
				Usage: "check settings, vault, report location, and history database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "vault",
						Value:   ".",
						Usage:   "vault directory to check",
						EnvVars: []string{"OBDS_VAULT"},
					},
				},
				Action: doctor.DoctorAction,
			},
			{
				Name:  "coldstart",
				Usage: "print a quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
