package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jake-scott/alexa-eolia/internal/pkg/handlers"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
	"github.com/jake-scott/alexa-eolia/pkg/middlewares"
)

var _serverCmdOpts struct {
	httpsPort       uint16
	tlsCertPath     string
	tlsKeyPath      string
	gracefulTimeout time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	apiTimeout      time.Duration
	apiURL          string
	maxInFlight     int
	corsOrigins     []string
	logRequests     bool
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Alexa directive endpoint",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doServer(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("https.key", "https.cert", "device-api.url", "device-api.credential")
	},
}

func init() {
	serverCmd.Flags().Uint16Var(&_serverCmdOpts.httpsPort, "https-port", 4343, "HTTPS port number")
	serverCmd.Flags().StringVar(&_serverCmdOpts.tlsCertPath, "tls-cert", "", "TLS certificate file")
	serverCmd.Flags().StringVar(&_serverCmdOpts.tlsKeyPath, "tls-key", "", "TLS key file")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.gracefulTimeout, "graceful-timeout", time.Second*15, "duration to wait for server to finish, eg. 1m or 10s")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.readTimeout, "read-timeout", time.Second*15, "duration to wait for request read, eg. 1m or 10s")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.writeTimeout, "write-timeout", time.Second*60, "duration to wait for request write, eg. 1m or 10s")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.apiTimeout, "api-timeout", time.Second*15, "maximum duration of an Eolia API call, eg. 1m or 10s")
	serverCmd.Flags().StringVar(&_serverCmdOpts.apiURL, "api-url", "", "Eolia device API base URL")
	serverCmd.Flags().IntVar(&_serverCmdOpts.maxInFlight, "max-inflight", 10, "maximum number of directives handled at once")
	serverCmd.Flags().StringSliceVar(&_serverCmdOpts.corsOrigins, "cors-origins", nil, "origins allowed to post directives from a browser")
	serverCmd.Flags().BoolVar(&_serverCmdOpts.logRequests, "log-requests", false, "log requests and responses (only in debug mode)")

	errPanic(viper.GetViper().BindPFlag("https.port", serverCmd.Flags().Lookup("https-port")))
	errPanic(viper.GetViper().BindPFlag("https.cert", serverCmd.Flags().Lookup("tls-cert")))
	errPanic(viper.GetViper().BindPFlag("https.key", serverCmd.Flags().Lookup("tls-key")))
	errPanic(viper.GetViper().BindPFlag("https.graceful-timeout", serverCmd.Flags().Lookup("graceful-timeout")))
	errPanic(viper.GetViper().BindPFlag("https.read-timeout", serverCmd.Flags().Lookup("read-timeout")))
	errPanic(viper.GetViper().BindPFlag("https.write-timeout", serverCmd.Flags().Lookup("write-timeout")))
	errPanic(viper.GetViper().BindPFlag("https.max-inflight", serverCmd.Flags().Lookup("max-inflight")))
	errPanic(viper.GetViper().BindPFlag("https.cors-origins", serverCmd.Flags().Lookup("cors-origins")))
	errPanic(viper.GetViper().BindPFlag("device-api.timeout", serverCmd.Flags().Lookup("api-timeout")))
	errPanic(viper.GetViper().BindPFlag("device-api.url", serverCmd.Flags().Lookup("api-url")))
	errPanic(viper.GetViper().BindPFlag("logging.log-requests", serverCmd.Flags().Lookup("log-requests")))

	rootCmd.AddCommand(serverCmd)
}

// newRouter assembles the HTTP surface around a dispatcher
func newRouter(d *handlers.Dispatcher, reg *prometheus.Registry, logRequests bool, maxInFlight int, corsOrigins []string) *mux.Router {
	ah := handlers.NewAlexaHandler(d)

	// Preflight requests only route when CORS is on
	alexaMethods := []string{http.MethodPost}

	r := mux.NewRouter()
	if len(corsOrigins) > 0 {
		r.Use(middlewares.NewCorsMw(corsOrigins))
		alexaMethods = append(alexaMethods, http.MethodOptions)
	}
	r.Use(middlewares.NewLoggingMw(logRequests))
	r.Use(middlewares.NewRecoveryMw())
	r.Use(middlewares.NewCorrelationMw("X-Correlation-ID"))

	r.Handle("/alexa", middlewares.NewLimiterMw(maxInFlight)(&ah)).Methods(alexaMethods...)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

func doServer() error {
	wait := viper.GetDuration("https.graceful-timeout")
	port := viper.GetUint("https.port")
	certFile := viper.GetString("https.cert")
	keyFile := viper.GetString("https.key")

	var logRequests bool
	if viper.GetBool("logging.log-requests") {
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logRequests = true
		} else {
			logging.Logger(nil).Warn("log-requests ignored when not in debug mode")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	d, err := newDispatcher(metrics.NewMetrics(reg))
	if err != nil {
		return err
	}

	r := newRouter(d, reg, logRequests, viper.GetInt("https.max-inflight"), viper.GetStringSlice("https.cors-origins"))

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		ReadTimeout:  viper.GetDuration("https.read-timeout"),
		WriteTimeout: viper.GetDuration("https.write-timeout"),
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}

	logging.Logger(nil).Infof("Serving on port %d", port)
	go func() {
		if err := s.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
			logging.Logger(nil).WithError(err).Error("running server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	logging.Logger(nil).Info("shutting down")
	if err := s.Shutdown(ctx); err != nil {
		logging.Logger(nil).WithError(err).Errorf("shutting down")
	}
	logging.Logger(nil).Info("exiting")
	return nil
}
