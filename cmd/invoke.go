package cmd

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/handlers"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

var _invokeCmdOpts struct {
	compact bool
}

var invokeCmd = &cobra.Command{
	Use:   "invoke [file|-]",
	Short: "Handle a single directive envelope and print the resulting event",
	Long: `Reads one Alexa directive envelope from a file, or from stdin when the
argument is - or omitted, handles it against the device API and prints the
event envelope as JSON.`,
	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		src := "-"
		if len(args) == 1 {
			src = args[0]
		}

		return doInvoke(cmd.Context(), src, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	invokeCmd.Flags().BoolVar(&_invokeCmdOpts.compact, "compact", false, "print the event on a single line")

	rootCmd.AddCommand(invokeCmd)
}

func readDirective(src string, stdin io.Reader) ([]byte, error) {
	if src == "-" {
		b, err := ioutil.ReadAll(stdin)
		return b, errors.Wrap(err, "reading directive from stdin")
	}

	path, err := homedir.Expand(src)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %s", src)
	}

	b, err := ioutil.ReadFile(path)
	return b, errors.Wrapf(err, "reading directive from %s", path)
}

// invokeDirective decodes and dispatches one envelope
func invokeDirective(ctx context.Context, d *handlers.Dispatcher, body []byte) (*alexa.Response, error) {
	var req alexa.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.Wrap(err, "decoding directive")
	}

	return d.Dispatch(ctx, &req), nil
}

func writeEvent(w io.Writer, resp *alexa.Response, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}

	return errors.Wrap(enc.Encode(resp), "encoding event")
}

func doInvoke(ctx context.Context, src string, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := readDirective(src, stdin)
	if err != nil {
		return err
	}

	d, err := newDispatcher(nil)
	if err != nil {
		return err
	}

	resp, err := invokeDirective(ctx, d, body)
	if err != nil {
		return err
	}

	if resp.Event.Header.Name == alexa.NameErrorResponse {
		logging.Logger(ctx).Warnf("directive answered with an error event")
	}

	return writeEvent(stdout, resp, _invokeCmdOpts.compact)
}
