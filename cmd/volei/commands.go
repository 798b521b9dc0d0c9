package main

import (
	"errors"
	"fmt"
	"strings"

	"volei-app/internal/logging"
	"volei-app/internal/model"
	"volei-app/internal/schedule"
	"volei-app/internal/source"
	"volei-app/internal/standings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

var (
	genderFlag string
	dateFlag   string
	venueFlag  string
	outputFlag string
	checkJobs  int
)

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the standings table of every group",
	Args:  cobra.NoArgs,
	RunE:  runStandings,
}

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the match days",
	Args:  cobra.NoArgs,
	RunE:  runDates,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the matches of one day grouped by venue and phase",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Validate tournament documents and report data problems",
	Long: `Loads every document, runs the standings computation and lists unknown
teams, invalid scores and duplicated roster entries. Exits non-zero when any
document has a problem.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

func init() {
	standingsCmd.Flags().StringVarP(&genderFlag, "gender", "g", "", "only this division (F or M)")
	standingsCmd.Flags().StringVarP(&outputFlag, "output", "o", "text", "output format: text, json or yaml")
	scheduleCmd.Flags().StringVarP(&genderFlag, "gender", "g", "", "only this division (F or M)")
	scheduleCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "day to show (YYYY-MM-DD, default first day)")
	scheduleCmd.Flags().StringVar(&venueFlag, "venue", "", "only this venue")
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", 4, "documents checked in parallel")
}

func parseGender(value string) (model.Gender, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	gender := model.Gender(value)
	if !gender.Valid() {
		return "", fmt.Errorf("unknown gender %q (use F or M)", value)
	}
	return gender, nil
}

func runStandings(cmd *cobra.Command, args []string) error {
	gender, err := parseGender(genderFlag)
	if err != nil {
		return err
	}
	t, err := loadTournament(cmd.Context())
	if err != nil {
		return err
	}
	tables, diags := standings.Tables(t)
	logging.Diagnostics(logger, diags)

	selected := make([]standings.Table, 0, len(tables))
	for _, table := range tables {
		if gender != "" && table.Key.Gender != gender {
			continue
		}
		selected = append(selected, table)
	}
	return writeStandings(cmd.OutOrStdout(), selected, outputFlag)
}

func runDates(cmd *cobra.Command, args []string) error {
	t, err := loadTournament(cmd.Context())
	if err != nil {
		return err
	}
	for _, date := range schedule.Dates(schedule.InferGenders(t.Teams, t.Matches)) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", date.Format(model.DateLayout), schedule.FormatDay(date))
	}
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	gender, err := parseGender(genderFlag)
	if err != nil {
		return err
	}
	t, err := loadTournament(cmd.Context())
	if err != nil {
		return err
	}
	matches := schedule.InferGenders(t.Teams, t.Matches)
	filter := schedule.Filter{Gender: gender, Venue: strings.TrimSpace(venueFlag)}
	if strings.TrimSpace(dateFlag) != "" {
		date, err := model.ParseDate(strings.TrimSpace(dateFlag))
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateFlag, err)
		}
		filter.Date = date
	} else if dates := schedule.Dates(matches); len(dates) > 0 {
		filter.Date = dates[0]
	}
	printDay(cmd.OutOrStdout(), schedule.ForDay(matches, filter))
	return nil
}

type checkReport struct {
	Path        string
	Teams       int
	Matches     int
	Diagnostics []standings.Diagnostic
	Err         error
}

func (r checkReport) ok() bool {
	return r.Err == nil && len(r.Diagnostics) == 0
}

func checkFiles(paths []string, jobs int) []checkReport {
	reports := make([]checkReport, len(paths))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			report := checkReport{Path: path}
			t, err := source.LoadFile(path)
			if err != nil {
				report.Err = err
			} else {
				report.Teams = len(t.Teams)
				report.Matches = len(t.Matches)
				report.Diagnostics = standings.Compute(t.Teams, t.Matches).Diagnostics
			}
			reports[i] = report
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func runCheck(cmd *cobra.Command, args []string) error {
	reports := checkFiles(args, checkJobs)
	failed := 0
	for _, report := range reports {
		printCheckReport(cmd.OutOrStdout(), report)
		if !report.ok() {
			failed++
		}
		if report.Err != nil {
			logger.Error("document unreadable", zap.String("path", report.Path), zap.Error(report.Err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents have problems", failed, len(reports))
	}
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	password := args[0]
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(hash))
	return nil
}
