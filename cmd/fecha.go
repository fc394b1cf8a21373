package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"intranet/utils"
)

var (
	dayStyles = map[string]utils.DayStyle{
		"2-digit": utils.Day2Digit,
		"numeric": utils.DayNumeric,
		"none":    utils.DayNone,
	}
	monthStyles = map[string]utils.MonthStyle{
		"short":   utils.MonthShort,
		"long":    utils.MonthLong,
		"narrow":  utils.MonthNarrow,
		"numeric": utils.MonthNumeric,
		"2-digit": utils.Month2Digit,
		"none":    utils.MonthNone,
	}
	yearStyles = map[string]utils.YearStyle{
		"numeric": utils.YearNumeric,
		"2-digit": utils.Year2Digit,
		"none":    utils.YearNone,
	}
	weekdayStyles = map[string]utils.WeekdayStyle{
		"none":  utils.WeekdayNone,
		"short": utils.WeekdayShort,
		"long":  utils.WeekdayLong,
	}
)

func newFechaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fecha",
		Short: "Date helpers",
	}
	cmd.AddCommand(newFechaFormatCmd())
	cmd.AddCommand(newFechaLunesCmd())
	cmd.AddCommand(newFechaSemanaCmd())
	return cmd
}

func lookup[T any](m map[string]T, flag, value string) (T, error) {
	v, ok := m[value]
	if !ok {
		var zero T
		return zero, fmt.Errorf("invalid --%s value %q", flag, value)
	}
	return v, nil
}

func newFechaFormatCmd() *cobra.Command {
	var day, month, year, weekday, locale string

	cmd := &cobra.Command{
		Use:   "format <YYYY-MM-DD>",
		Short: "Render a date in the intranet locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lookup(dayStyles, "day", day)
			if err != nil {
				return err
			}
			m, err := lookup(monthStyles, "month", month)
			if err != nil {
				return err
			}
			y, err := lookup(yearStyles, "year", year)
			if err != nil {
				return err
			}
			wd, err := lookup(weekdayStyles, "weekday", weekday)
			if err != nil {
				return err
			}
			tag, err := language.Parse(locale)
			if err != nil {
				return fmt.Errorf("invalid --locale: %w", err)
			}

			out := utils.FormatDate(args[0],
				utils.WithDay(d), utils.WithMonth(m), utils.WithYear(y),
				utils.WithWeekday(wd), utils.WithLocale(tag))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "2-digit", "day style: 2-digit, numeric, none")
	cmd.Flags().StringVar(&month, "month", "short", "month style: short, long, narrow, numeric, 2-digit, none")
	cmd.Flags().StringVar(&year, "year", "numeric", "year style: numeric, 2-digit, none")
	cmd.Flags().StringVar(&weekday, "weekday", "none", "weekday style: none, short, long")
	cmd.Flags().StringVar(&locale, "locale", utils.DefaultLocale.String(), "BCP 47 locale")
	return cmd
}

func dateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(utils.DateLayout, args[0], time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[0])
	}
	return t, nil
}

func newFechaLunesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lunes [YYYY-MM-DD]",
		Short: "Print the Monday of the week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := dateArg(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.GetMonday(t).Format(utils.DateLayout))
			return nil
		},
	}
}

func newFechaSemanaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "semana [YYYY-MM-DD]",
		Short: "Print the Monday to Sunday range of the week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := dateArg(args)
			if err != nil {
				return err
			}
			start, end := utils.WeekRange(t)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				start.Format(utils.DateLayout), end.Format(utils.DateLayout))
			return nil
		},
	}
}
