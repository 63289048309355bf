package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/medreminder/internal/config"
	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/logging"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/recurrence"
	"github.com/medreminder/internal/service"
	"github.com/medreminder/internal/store"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

var timeNow = time.Now

func dueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "Print the doses due on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			tab, _ := cmd.Flags().GetString("tab")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.New(cfg.LogLevel, cfg.LogFormat)

			gdb, err := db.Open(cfg.DatabasePath, logger.Default.LogMode(logger.Silent))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close(gdb)

			if date == "" {
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				date = recurrence.FormatDate(recurrence.Today(timeNow(), loc))
			}

			repo := store.NewRepository(store.NewGormKV(gdb), log)
			return printDue(cmd.OutOrStdout(), repo, date, tab)
		},
	}
	cmd.Flags().String("date", "", "Date to inspect (YYYY-MM-DD), defaults to today")
	cmd.Flags().String("tab", model.TabMedicine, "Category tab: medicine or injection")
	return cmd
}

func printDue(out io.Writer, repo *store.Repository, date, tab string) error {
	parsedTab, err := service.ParseTab(tab)
	if err != nil {
		return err
	}

	medicines := service.NewMedicineService(repo, events.Nop{})
	water := service.NewWaterService(repo, events.Nop{}, service.DefaultWaterGoalML, service.DefaultWaterIncrementML)
	calendar := service.NewCalendarService(repo, water)

	items, err := medicines.ForDate(date, parsedTab)
	if err != nil {
		return err
	}
	summary, err := calendar.DaySummary(date, parsedTab)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tSLOT\tTAKEN\n")
	for _, item := range items {
		for i, slot := range item.Schedules {
			taken := "no"
			if i < len(item.Taken) && item.Taken[i] {
				taken = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.ID, item.Name, slot.Time, taken)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d/%d %s completed\n", summary.Date, summary.CompletedCount, summary.TotalCount, parsedTab)
	return nil
}
