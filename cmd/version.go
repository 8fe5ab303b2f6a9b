package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jake-scott/alexa-eolia/version"
)

var (
	_versionAsJSON bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version number of the tool",

	RunE: func(cmd *cobra.Command, args []string) error {
		return doVersion(cmd.OutOrStdout(), _versionAsJSON)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&_versionAsJSON, "json", false, "Return version as JSON")

	rootCmd.AddCommand(versionCmd)
}

type versionResult struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

func doVersion(w io.Writer, asJSON bool) error {
	if asJSON {
		v := versionResult{
			Name:      version.Name,
			Version:   version.Version,
			GoVersion: runtime.Version(),
		}

		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return err
		}

		fmt.Fprintln(w, string(b))
	} else {
		fmt.Fprintf(w, "%s version %s (%s)\n", version.Name, version.Version, runtime.Version())
	}

	return nil
}
