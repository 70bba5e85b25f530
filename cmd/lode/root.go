package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quarryworks/lode/pkg/adapters/file"
	"github.com/quarryworks/lode/pkg/adapters/redis"
	"github.com/quarryworks/lode/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "lode",
	Short: "lode is a resumable vein-mining engine",
	Long:  `Lode drives a mining rig through connected ore veins one primitive operation at a time, persisting its work stack so an excavation survives restarts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("state-dir", filepath.Join(".lode", "sessions"), "Directory for persisted excavation state")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for state storage (overrides --state-dir)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// getStore picks the state store from the persistent flags.
func getStore(cmd *cobra.Command) ports.StateStore {
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		return redis.New(addr, "", 0)
	}
	dir, _ := cmd.Flags().GetString("state-dir")
	return file.New(dir)
}
