package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanread/internal/output"
	"github.com/jmylchreest/cleanread/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("output")
		if name == "" {
			fmt.Println(version.Full())
			return nil
		}
		format, ok := output.ParseFormat(name)
		if !ok {
			return fmt.Errorf("unknown output format %q (supported: json, yaml)", name)
		}
		return output.Write(os.Stdout, format, version.Get())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringP("output", "o", "", "output format: json, yaml")
	rootCmd.Version = version.String()
}
