package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kingcorpe/portmanagement--sub005/internal/engine"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare row counts between source and target",
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

		tables := viper.GetStringSlice("sync.verify")
		if len(tables) == 0 {
			tables = viper.GetStringSlice("sync.tables")
		}
		if len(tables) == 0 {
			// Fall back to every table visible in the source.
			tables, err = srcDialect.ListTables(srcDB, source.Schema)
			if err != nil {
				return err
			}
		}
		if len(tables) == 0 {
			return fmt.Errorf("no tables to verify")
		}

		pairs := engine.VerifyCounts(srcDB, dstDB, srcDialect, dstDialect, tables)
		printVerification(pairs)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
