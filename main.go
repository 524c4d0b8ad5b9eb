package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	flagAddr        string
	flagMaxUploadMB int64
	flagMaxRows     int
)

var rootCmd = &cobra.Command{
	Use:   "csvinsight",
	Short: "Web app that reports data-quality metrics for an uploaded CSV",
	Long: `csvinsight serves a single upload page: POST a CSV and get back
missing-value, duplicate-row, row and column counts plus a histogram
of the first column.`,
	RunE: runServer,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./csvinsight.yaml)")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	rootCmd.Flags().Int64Var(&flagMaxUploadMB, "max-upload-mb", 0, "max upload size in MB (overrides config)")
	rootCmd.Flags().IntVar(&flagMaxRows, "max-rows", 0, "max data rows per upload (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("addr") && flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if f.Changed("max-upload-mb") && flagMaxUploadMB > 0 {
		cfg.MaxUploadMB = flagMaxUploadMB
	}
	if f.Changed("max-rows") && flagMaxRows > 0 {
		cfg.MaxRows = flagMaxRows
	}

	srv := newServer(cfg)
	log.Printf("Server running on http://localhost%s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, srv.routes())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
