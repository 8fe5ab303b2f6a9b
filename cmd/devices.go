package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
)

var _devicesCmdOpts struct {
	asJSON bool
	asYAML bool
	status bool
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the appliances registered with the device API",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		api, err := newDeviceAPI(nil)
		if err != nil {
			return err
		}

		return doDevices(ctx, api, cmd.OutOrStdout())
	},
}

func init() {
	devicesCmd.Flags().BoolVar(&_devicesCmdOpts.asJSON, "json", false, "print the device list as JSON")
	devicesCmd.Flags().BoolVar(&_devicesCmdOpts.asYAML, "yaml", false, "print the device list as YAML")
	devicesCmd.Flags().BoolVar(&_devicesCmdOpts.status, "status", false, "also fetch the current status of each device")

	rootCmd.AddCommand(devicesCmd)
}

type deviceListing struct {
	ID          int     `json:"id" yaml:"id"`
	EndpointID  string  `json:"endpointId" yaml:"endpointId"`
	Name        string  `json:"name" yaml:"name"`
	ProductCode string  `json:"productCode,omitempty" yaml:"productCode,omitempty"`
	ProductName string  `json:"productName,omitempty" yaml:"productName,omitempty"`
	Power       *bool   `json:"power,omitempty" yaml:"power,omitempty"`
	Mode        string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Setpoint    float64 `json:"setpoint,omitempty" yaml:"setpoint,omitempty"`
	Inside      float64 `json:"insideTemperature,omitempty" yaml:"insideTemperature,omitempty"`
}

func listDevices(ctx context.Context, api eoliaapi.DeviceAPI, withStatus bool) ([]deviceListing, error) {
	devices, err := api.Devices(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing devices")
	}

	listing := make([]deviceListing, 0, len(devices))
	for _, d := range devices {
		l := deviceListing{
			ID:          d.ID,
			EndpointID:  fmt.Sprint(d.ID),
			Name:        d.DisplayName,
			ProductCode: d.ProductCode,
			ProductName: d.ProductName,
		}

		if withStatus {
			status, err := api.GetDeviceStatus(ctx, d.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "fetching status of device %d", d.ID)
			}
			on := status.OperationStatus
			l.Power = &on
			l.Mode = string(status.OperationMode)
			l.Setpoint = status.Temperature
			l.Inside = status.InsideTemperature
		}

		listing = append(listing, l)
	}

	return listing, nil
}

func writeDevices(w io.Writer, listing []deviceListing, asJSON, asYAML bool) error {
	switch {
	case asJSON:
		b, err := json.MarshalIndent(listing, "", "    ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err

	case asYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPOINT\tNAME\tPRODUCT\tMODE\tSETPOINT")
	for _, l := range listing {
		mode, setpoint := "-", "-"
		if l.Power != nil {
			mode = l.Mode
			setpoint = fmt.Sprintf("%g", l.Setpoint)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.EndpointID, l.Name, l.ProductCode, mode, setpoint)
	}

	return tw.Flush()
}

func doDevices(ctx context.Context, api eoliaapi.DeviceAPI, w io.Writer) error {
	listing, err := listDevices(ctx, api, _devicesCmdOpts.status)
	if err != nil {
		return err
	}

	return writeDevices(w, listing, _devicesCmdOpts.asJSON, _devicesCmdOpts.asYAML)
}
