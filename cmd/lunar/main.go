// Command lunar converts dates and prints month grids from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/zapponejosh/lunar-calendar-api/internal/calendar"
	"github.com/zapponejosh/lunar-calendar-api/internal/lunar"
)

// dateOutput is what convert and solar print.
type dateOutput struct {
	SolarDate string `json:"solar_date"`
	LunarDate string `json:"lunar_date"`
	LunarYear string `json:"lunar_year"`
	Zodiac    string `json:"zodiac"`
	Year      int    `json:"lunar_year_number"`
	Month     int    `json:"lunar_month_number"`
	Day       int    `json:"lunar_day_number"`
	IsLeap    bool   `json:"is_leap_month"`
}

func (o dateOutput) text() string {
	return fmt.Sprintf("%s  %s%s  %s", o.SolarDate, o.LunarYear, o.LunarDate, o.Zodiac)
}

// yearOutput is one row of the table command.
type yearOutput struct {
	Year      int    `json:"year"`
	Name      string `json:"name"`
	Zodiac    string `json:"zodiac"`
	NewYear   string `json:"new_year"`
	Days      int    `json:"days"`
	LeapMonth int    `json:"leap_month"`
	LeapDays  int    `json:"leap_month_days"`
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		slog.Error("lunar", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "lunar",
		Usage:  fmt.Sprintf("Lunar calendar conversions (%s to %s)", lunar.Epoch.Format(time.DateOnly), lunar.LastDate().Format(time.DateOnly)),
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json or text",
				Value:   "json",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert a Gregorian date to its lunar date",
				ArgsUsage: "YEAR MONTH DAY",
				Action:    convertAction,
			},
			{
				Name:      "solar",
				Usage:     "Convert a lunar date to its Gregorian date",
				ArgsUsage: "YEAR MONTH DAY",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "leap", Usage: "The month is the leap month"},
				},
				Action: solarAction,
			},
			{
				Name:      "month",
				Usage:     "Print the calendar grid of a Gregorian month",
				ArgsUsage: "YEAR MONTH",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "today", Usage: "Date to mark as today (YYYY-MM-DD)"},
				},
				Action: monthAction,
			},
			{
				Name:  "table",
				Usage: "List lunar year lengths and leap months",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "from", Usage: "First lunar year", Value: lunar.MinYear},
					&cli.IntFlag{Name: "to", Usage: "Last lunar year", Value: lunar.MaxYear},
				},
				Action: tableAction,
			},
		},
	}
}

// intArgs parses exactly n integer positional arguments.
func intArgs(cmd *cli.Command, names ...string) ([]int, error) {
	if cmd.NArg() != len(names) {
		return nil, fmt.Errorf("%s: expected %s", cmd.Name, strings.Join(names, " "))
	}
	values := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(cmd.Args().Get(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %s must be an integer: %q", cmd.Name, strings.ToLower(name), cmd.Args().Get(i))
		}
		values[i] = v
	}
	return values, nil
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	args, err := intArgs(cmd, "YEAR", "MONTH", "DAY")
	if err != nil {
		return err
	}

	ld, err := lunar.Convert(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	out := newDateOutput(args[0], args[1], args[2], ld)
	return write(cmd, out, out.text())
}

func solarAction(ctx context.Context, cmd *cli.Command) error {
	args, err := intArgs(cmd, "YEAR", "MONTH", "DAY")
	if err != nil {
		return err
	}

	solar, err := lunar.ToSolar(args[0], args[1], args[2], cmd.Bool("leap"))
	if err != nil {
		return err
	}

	y, m, d := solar.Date()
	ld, err := lunar.Convert(y, int(m), d)
	if err != nil {
		return err
	}

	out := newDateOutput(y, int(m), d, ld)
	return write(cmd, out, out.text())
}

func monthAction(ctx context.Context, cmd *cli.Command) error {
	args, err := intArgs(cmd, "YEAR", "MONTH")
	if err != nil {
		return err
	}

	today := calendar.Today(time.Now())
	if s := cmd.String("today"); s != "" {
		y, m, d, err := calendar.ParseDateString(s)
		if err != nil {
			return fmt.Errorf("--today: %w", err)
		}
		today = time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}

	grid, err := calendar.BuildMonthGrid(args[0], args[1], today)
	if err != nil {
		return err
	}

	return write(cmd, grid, gridText(grid))
}

func tableAction(ctx context.Context, cmd *cli.Command) error {
	from, to := int(cmd.Int("from")), int(cmd.Int("to"))
	if from < lunar.MinYear || to > lunar.MaxYear || from > to {
		return fmt.Errorf("table: years must satisfy %d <= from <= to <= %d", lunar.MinYear, lunar.MaxYear)
	}

	rows := make([]yearOutput, 0, to-from+1)
	for year := from; year <= to; year++ {
		rec := lunar.Table[year-lunar.MinYear]
		newYear, err := lunar.ToSolar(year, 1, 1, false)
		if err != nil {
			return err
		}
		ld := lunar.Date{Year: year, Month: 1, Day: 1}
		rows = append(rows, yearOutput{
			Year:      year,
			Name:      ld.YearName(),
			Zodiac:    ld.ZodiacName(),
			NewYear:   newYear.Format(time.DateOnly),
			Days:      rec.YearTotalDays(),
			LeapMonth: rec.LeapMonth(),
			LeapDays:  rec.LeapMonthDays(),
		})
	}

	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%d  %s  %s  %s  %d days", r.Year, r.Name, r.Zodiac, r.NewYear, r.Days)
		if r.LeapMonth != 0 {
			fmt.Fprintf(&sb, "  %s (%d days)", lunar.MonthName(r.LeapMonth, true), r.LeapDays)
		}
		sb.WriteByte('\n')
	}

	return write(cmd, rows, strings.TrimSuffix(sb.String(), "\n"))
}

func newDateOutput(year, month, day int, ld lunar.Date) dateOutput {
	return dateOutput{
		SolarDate: calendar.FormatDate(year, month, day),
		LunarDate: ld.String(),
		LunarYear: ld.YearName(),
		Zodiac:    ld.ZodiacName(),
		Year:      ld.Year,
		Month:     ld.Month,
		Day:       ld.Day,
		IsLeap:    ld.IsLeap,
	}
}

// gridText renders a grid as weeks of "day/lunar-day" cells, today in brackets.
func gridText(g *calendar.MonthGrid) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04d-%02d  %s  %s\n", g.Year, g.Month, g.LunarYear, g.Zodiac)
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&sb, "%-10s", calendar.WeekdayName(time.Weekday(i)))
	}
	for i, c := range g.Days {
		if i%7 == 0 {
			sb.WriteByte('\n')
		}
		cell := fmt.Sprintf("%d/%s", c.Day, c.LunarDay)
		if c.IsToday {
			cell = "[" + cell + "]"
		}
		fmt.Fprintf(&sb, "%-10s", cell)
	}
	return sb.String()
}

// write prints v as indented JSON, or text when --format=text.
func write(cmd *cli.Command, v interface{}, text string) error {
	w := cmd.Root().Writer

	switch cmd.String("format") {
	case "text":
		_, err := fmt.Fprintln(w, text)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (want json or text)", cmd.String("format"))
	}
}
