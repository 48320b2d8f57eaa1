package main

import (
	"github.com/spf13/cobra"

	"javadox/internal/version"
)

var (
	// formatFlag is the persistent --format flag value
	formatFlag string
	verbosity  int
	quietFlag  bool
	logFile    string
	rootFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "javadox",
	Short: "javadox - Java declaration and doc comment model",
	Long: `javadox parses Java sources into an entity model of classes, fields,
methods and parameters with their modifiers and doc tags, and regenerates
formatted declarations and documentation blocks from that model.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", string(FormatHuman), "Output format (json, human)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress all console logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append logs to this file")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Project root holding .javadox/config.json")
}

// outputFormat validates the --format flag.
func outputFormat() (OutputFormat, error) {
	switch f := OutputFormat(formatFlag); f {
	case FormatJSON, FormatHuman:
		return f, nil
	default:
		return "", usageError("unsupported --format %q (want json or human)", formatFlag)
	}
}

// writeResponse formats resp with the --format flag and prints it.
func writeResponse(cmd *cobra.Command, resp any) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write([]byte(out + "\n"))
	return err
}
