// Package main provides the CLI entry point for auditreport.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/ukaji3/auditreport-go/pkg/auditreport"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/config"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/logging"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/output"
	"go.uber.org/zap"
)

const defaultConfigPath = "auditreport.yaml"

type cliState struct {
	configPath string
	verbose    bool

	dataPath   string
	infoPath   string
	outputPath string

	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state := &cliState{}
	defer func() {
		if r := recover(); r != nil {
			logger := state.logger
			if logger == nil {
				logger, _ = logging.New(logging.Options{ErrorLog: config.DefaultConfig().Log.ErrorLog})
			}
			if logger != nil {
				logger.Error("panic", zap.Any("recovered", r), zap.Stack("stack"))
				_ = logger.Sync()
			}
			os.Exit(2)
		}
	}()

	if err := newRootCmd(state).ExecuteContext(ctx); err != nil {
		if state.logger != nil {
			state.logger.Error("command failed", zap.Error(err), zap.Stack("stack"))
			_ = state.logger.Sync()
		}
		os.Exit(1)
	}
	if state.logger != nil {
		_ = state.logger.Sync()
	}
}

func newRootCmd(state *cliState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "auditreport",
		Short: "Generate audit reports from notes workbooks and Word templates",
		Long: `auditreport reads the subject directory, basic information and subject
tables from Excel workbooks and merges them into a Word report template.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&state.configPath, "config", "c", defaultConfigPath, "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&state.dataPath, "data", "", "Notes workbook (overrides paths.data_workbook)")
	rootCmd.PersistentFlags().StringVar(&state.infoPath, "info", "", "Basic-info workbook (overrides paths.basic_info_workbook)")

	rootCmd.AddCommand(newExportCmd(state), newInspectCmd(state), newInitConfigCmd())
	return rootCmd
}

func newExportCmd(state *cliState) *cobra.Command {
	var templateKey, reportType, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report for the selected template, report type and format",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.load(cmd)
			if err != nil {
				return err
			}

			opts := auditreport.Options{
				TemplateKey: templateKey,
				ReportType:  reportType,
			}
			if format != "" {
				f, err := auditreport.ParseFormat(format)
				if err != nil {
					return err
				}
				opts.Format = f
			}

			path, err := auditreport.New(cfg, auditreport.WithLogger(state.logger)).ExportReport(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "报告导出成功: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateKey, "template", "t", "", "Template variant (e.g. 高新, 普通)")
	cmd.Flags().StringVar(&reportType, "type", "", "Report type (e.g. 年报)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: PDF or Word")
	cmd.Flags().StringVarP(&state.outputPath, "output", "o", "", "Output document (overrides paths.output)")
	return cmd
}

func newInspectCmd(state *cliState) *cobra.Command {
	var pretty bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the subjects, replacements and tables read from the workbooks as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.load(cmd)
			if err != nil {
				return err
			}

			data, err := auditreport.New(cfg, auditreport.WithLogger(state.logger)).Prepare(cmd.Context())
			if err != nil {
				return err
			}
			if outputPath != "" {
				return output.WriteJSONFile(outputPath, data, pretty)
			}
			return output.WriteJSON(cmd.OutOrStdout(), data, pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().SaveToFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "配置文件已生成: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

// load reads the configuration, applies flag overrides and builds the logger.
// A missing default config file falls back to the built-in defaults.
func (s *cliState) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFromFile(s.configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}

	if s.dataPath != "" {
		cfg.Paths.DataWorkbook = s.dataPath
	}
	if s.infoPath != "" {
		cfg.Paths.BasicInfoWorkbook = s.infoPath
	}
	if s.outputPath != "" {
		cfg.Paths.Output = s.outputPath
	}
	if s.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		ErrorLog:   cfg.Log.ErrorLog,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, err
	}
	s.logger = logger
	return cfg, nil
}
