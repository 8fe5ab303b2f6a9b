package cmd

import (
	"fmt"
	"strings"
	"time"

	// Zone data for hosts without /usr/share/zoneinfo (eg. scratch images)
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
	"github.com/jake-scott/alexa-eolia/internal/pkg/handlers"
	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
)

func init() {
	viper.SetDefault("device-api.timeout", 15*time.Second)
	viper.SetDefault("device-api.retries", 2)
	viper.SetDefault("device-api.language", "ja-jp")

	viper.SetDefault("alexa.timezone", "Asia/Tokyo")
	viper.SetDefault("alexa.manufacturer", "Eolia Client")
	viper.SetDefault("alexa.cleaning-suffix", "お掃除")
	viper.SetDefault("alexa.nanoex-suffix", "お出かけクリーン")
}

func checkRequiredFlags(needFlags ...string) error {
	missingFlags := []string{}

	for _, f := range needFlags {
		if !viper.IsSet(f) || viper.GetString(f) == "" {
			missingFlags = append(missingFlags, f)
		}
	}

	if len(missingFlags) > 0 {
		itemPlural := "item"
		if len(missingFlags) > 1 {
			itemPlural = "items"
		}
		return fmt.Errorf("required config %s `%s` not set", itemPlural, strings.Join(missingFlags, "`, `"))
	}

	return nil
}

// newDeviceAPI builds the live device API client from the config
func newDeviceAPI(m *metrics.Metrics) (*eoliaapi.Live, error) {
	if err := checkRequiredFlags("device-api.url", "device-api.credential"); err != nil {
		return nil, err
	}

	return eoliaapi.NewLiveClient(viper.GetString("device-api.url"), viper.GetString("device-api.credential")).
		WithTimeout(viper.GetDuration("device-api.timeout")).
		WithRetries(viper.GetInt("device-api.retries")).
		WithLanguage(viper.GetString("device-api.language")).
		WithMetrics(m), nil
}

// newDispatcher wires a dispatcher to the live device API
func newDispatcher(m *metrics.Metrics) (*handlers.Dispatcher, error) {
	api, err := newDeviceAPI(m)
	if err != nil {
		return nil, err
	}

	zone := viper.GetString("alexa.timezone")
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading time zone %q", zone)
	}

	return handlers.NewDispatcher(api, m, handlers.Options{
		Location:         loc,
		ManufacturerName: viper.GetString("alexa.manufacturer"),
		CleaningSuffix:   viper.GetString("alexa.cleaning-suffix"),
		NanoexSuffix:     viper.GetString("alexa.nanoex-suffix"),
	}), nil
}
