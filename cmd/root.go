package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "portsync",
	Short: "A cross-database table synchronizer",
	Long: `
  ____   ___  ____ _____ ______   ___   _  ____
 |  _ \ / _ \|  _ \_   _/ ___\ \ / / \ | |/ ___|
 | |_) | | | | |_) || | \___ \\ V /|  \| | |
 |  __/| |_| |  _ < | |  ___) || | | |\  | |___
 |_|    \___/|_| \_\|_| |____/ |_| |_| \_|\____|

PORTSYNC - copies rows missing from a destination database,
table by table, skipping rows that already exist by key.
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portsync.yaml)")
	RootCmd.PersistentFlags().String("source-dsn", "", "source database DSN")
	RootCmd.PersistentFlags().String("target-dsn", "", "target database DSN")
	RootCmd.PersistentFlags().String("source-driver", "", "source database driver (postgres, mysql, sqlserver, oracle, sqlite)")
	RootCmd.PersistentFlags().String("target-driver", "", "target database driver")

	viper.BindPFlag("source.dsn", RootCmd.PersistentFlags().Lookup("source-dsn"))
	viper.BindPFlag("target.dsn", RootCmd.PersistentFlags().Lookup("target-dsn"))
	viper.BindPFlag("source.driver", RootCmd.PersistentFlags().Lookup("source-driver"))
	viper.BindPFlag("target.driver", RootCmd.PersistentFlags().Lookup("target-driver"))

	viper.SetDefault("source.driver", "postgres")
	viper.SetDefault("target.driver", "postgres")
	viper.SetDefault("seed.count", 50)
}

// initConfig reads in config file and PORTSYNC_* environment variables.
// Connection strings are never embedded defaults; they must arrive via
// flag, config file, or environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("portsync")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PORTSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
