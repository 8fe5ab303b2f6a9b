package cmd

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
	"github.com/jake-scott/alexa-eolia/version"
)

const envPrefix = "ALEXA_EOLIA"

var _rootCmdOpts struct {
	configFile string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:   version.Name,
	Short: "Alexa smart home adapter for Panasonic Eolia air conditioners",
	Long: `Translates Alexa smart home directives into calls against the Eolia
device API and answers with the matching Alexa events.`,
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _rootCmdOpts.debug {
			logrus.SetLevel(logrus.DebugLevel)
		}

		return logging.Configure(viper.GetViper())
	},
}

// Execute runs the command line, exiting non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&_rootCmdOpts.configFile, "config", "", "config file (default is $HOME/.alexa-eolia.yaml)")
	rootCmd.PersistentFlags().BoolVar(&_rootCmdOpts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-location", "stderr", "log to stderr, stdout or a file path")
	rootCmd.PersistentFlags().String("log-format", "text", "log format, text or json")

	errPanic(viper.GetViper().BindPFlag("logging.location", rootCmd.PersistentFlags().Lookup("log-location")))
	errPanic(viper.GetViper().BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format")))
}

func initConfig() {
	if _rootCmdOpts.configFile != "" {
		path, err := homedir.Expand(_rootCmdOpts.configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "expanding config path: %s\n", err)
			os.Exit(1)
		}
		viper.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "finding home directory: %s\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".alexa-eolia")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine, everything can come from
		// flags and the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || _rootCmdOpts.configFile != "" {
			fmt.Fprintf(os.Stderr, "reading config: %s\n", err)
			os.Exit(1)
		}
	} else {
		logging.Logger(nil).Debugf("using config file %s", viper.ConfigFileUsed())
	}
}

func errPanic(err error) {
	if err != nil {
		panic(err)
	}
}
