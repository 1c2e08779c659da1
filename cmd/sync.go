package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kingcorpe/portmanagement--sub005/internal/engine"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

var (
	syncTables   []string
	dryRun       bool
	maxRowErrors int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy rows missing from the target database",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := GetEndpoint("source")
		if err != nil {
			return err
		}
		target, err := GetEndpoint("target")
		if err != nil {
			return err
		}

		srcDB, srcDialect, err := source.Connect()
		if err != nil {
			return err
		}
		defer srcDB.Close()

		dstDB, dstDialect, err := target.Connect()
		if err != nil {
			return err
		}
		defer dstDB.Close()

		fmt.Printf("Source: %s (%s)\n", source.Driver, source.Schema)
		fmt.Printf("Target: %s (%s)\n", target.Driver, target.Schema)

		// Table plan: explicit list wins, order preserved; otherwise
		// discover from the source and sort by FK dependencies.
		plan := syncTables
		if len(plan) == 0 {
			plan = viper.GetStringSlice("sync.tables")
		}
		if len(plan) == 0 {
			log.Println("Analyzing source schema...")
			tables, err := schema.Inspect(srcDB, srcDialect, source.Schema)
			if err != nil {
				return err
			}
			for _, t := range tables {
				plan = append(plan, t.Name)
			}
		}
		if len(plan) == 0 {
			return fmt.Errorf("no tables to sync")
		}

		if dryRun {
			log.Println("[SIMULATION] Dry-Run Mode Active: No data will be written.")
			fmt.Printf("Planned order:\n")
			for i, name := range plan {
				fmt.Printf("[%02d] %s\n", i+1, name)
			}
			return nil
		}

		log.Printf("Starting sync of %d tables...", len(plan))
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(len(plan)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Syncing: "
		})

		syncer := &engine.Syncer{
			Source:        srcDB,
			Target:        dstDB,
			SourceDialect: srcDialect,
			TargetDialect: dstDialect,
			SourceSchema:  source.Schema,
			TargetSchema:  target.Schema,
			Keys:          keyOverrides(),
			MaxRowErrors:  maxRowErrors,
		}
		results := syncer.Run(plan, func() {
			bar.Incr()
		})

		uiprogress.Stop()

		elapsed := time.Since(start)
		printSyncReport(results)
		log.Printf("Sync Done! Time Elapsed: %s", elapsed)

		// Verification block: compare row counts on the configured subset
		// (default: every synced table).
		verifyList := viper.GetStringSlice("sync.verify")
		if len(verifyList) == 0 {
			verifyList = plan
		}
		pairs := engine.VerifyCounts(srcDB, dstDB, srcDialect, dstDialect, verifyList)
		printVerification(pairs)

		return nil
	},
}

func printSyncReport(results []schema.SyncResult) {
	fmt.Println("\n📊 Sync Report (table order):")
	for i, r := range results {
		icon := "✓"
		if r.Errors > 0 {
			icon = "!"
		} else if r.Status != schema.StatusSynced {
			icon = "-"
		}
		fmt.Printf("[%s] [%02d/%02d] %-24s : imported=%d skipped=%d errors=%d (%s)\n",
			icon, i+1, len(results), r.Table, r.Imported, r.Skipped, r.Errors, r.Status)
		if r.ErrorMsg != "" {
			fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
		}
	}

	imported, skipped, errCount := engine.Totals(results)
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Total: imported=%d skipped=%d errors=%d\n", imported, skipped, errCount)
}

func printVerification(pairs []engine.CountPair) {
	fmt.Println("\n🔎 Verification (row counts):")
	fmt.Printf("    %-24s %10s %10s\n", "TABLE", "SOURCE", "TARGET")
	for _, p := range pairs {
		icon := "✓"
		if p.Status != "MATCH" {
			icon = "!"
		}
		fmt.Printf("[%s] %-24s %10d %10d  %s\n", icon, p.Table, p.Source, p.Target, p.Status)
	}
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringSliceVarP(&syncTables, "tables", "t", []string{}, "Tables to sync in order (comma-separated, overrides config)")
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned table order without writing")
	syncCmd.Flags().IntVar(&maxRowErrors, "max-row-errors", 0, "Abort a table after this many row errors (0 = no cap)")
}
