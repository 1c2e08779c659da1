package cmd

import (
	"fmt"
	"log"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kingcorpe/portmanagement--sub005/internal/engine"
	"github.com/Kingcorpe/portmanagement--sub005/internal/schema"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the source database with generated sample rows",
	Long: `Inserts generated sample rows into every table of the SOURCE
database, in dependency order, so a sync run can be rehearsed against
disposable databases.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := GetEndpoint("source")
		if err != nil {
			return err
		}

		db, d, err := source.Connect()
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("Seeding source: %s (%s)\n", source.Driver, source.Schema)

		log.Println("Analyzing source schema...")
		tables, err := schema.Inspect(db, d, source.Schema)
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			return fmt.Errorf("no tables found in source schema %s", source.Schema)
		}

		count := viper.GetInt("seed.count")
		if seedCount > 0 {
			count = seedCount
		}

		log.Printf("Seeding %d tables with %d rows each...", len(tables), count)

		uiprogress.Start()
		bar := uiprogress.AddBar(len(tables)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding: "
		})

		results := engine.Seed(db, d, tables, count, func() {
			bar.Incr()
		})

		uiprogress.Stop()

		fmt.Println("\n🌱 Seed Report (dependency order):")
		total := 0
		for i, r := range results {
			icon := "✓"
			if r.Errors > 0 {
				icon = "!"
			}
			fmt.Printf("[%s] [%02d/%02d] %-24s : inserted=%d errors=%d\n",
				icon, i+1, len(results), r.Table, r.Inserted, r.Errors)
			if r.ErrorMsg != "" {
				fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
			}
			total += r.Inserted
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Rows Inserted: %d\n", total)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCount, "count", 0, "Rows to generate per table (overrides config)")
	viper.BindPFlag("seed.count", seedCmd.Flags().Lookup("count"))
}
