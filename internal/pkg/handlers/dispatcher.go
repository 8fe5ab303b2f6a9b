package handlers

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
)

// For request validation routines
var formats strfmt.Registry

func init() {
	// Default validators
	formats = strfmt.NewFormats()
}

const (
	defaultManufacturerName = "Eolia Client"
	defaultCleaningSuffix   = "お掃除"
	defaultNanoexSuffix     = "お出かけクリーン"
)

// Options tunes what the dispatcher reports back to the assistant
type Options struct {
	// Zone of timeOfSample and timestamps, UTC when nil
	Location *time.Location

	ManufacturerName string
	CleaningSuffix   string
	NanoexSuffix     string

	// Overrides the clock, for tests
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.ManufacturerName == "" {
		o.ManufacturerName = defaultManufacturerName
	}
	if o.CleaningSuffix == "" {
		o.CleaningSuffix = defaultCleaningSuffix
	}
	if o.NanoexSuffix == "" {
		o.NanoexSuffix = defaultNanoexSuffix
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	return o
}

// Dispatcher routes one directive to its handler and always answers with an
// event.  It holds no per-request state.
type Dispatcher struct {
	api     eoliaapi.DeviceAPI
	metrics *metrics.Metrics
	opts    Options
}

func NewDispatcher(api eoliaapi.DeviceAPI, m *metrics.Metrics, opts Options) *Dispatcher {
	return &Dispatcher{
		api:     api,
		metrics: m,
		opts:    opts.withDefaults(),
	}
}

func (d *Dispatcher) now() time.Time {
	return d.opts.Now().In(d.opts.Location)
}

// Dispatch handles one directive.  Failures never escape: they are logged
// once here and converted to an ErrorResponse event.
func (d *Dispatcher) Dispatch(ctx context.Context, req *alexa.Request) (resp *alexa.Response) {
	start := time.Now()
	namespace, name := req.Key()
	ctx = logging.WithDirective(ctx, namespace, name, req.EndpointID())
	ctxLogger := logging.Logger(ctx)

	var err error
	defer func() {
		if p := recover(); p != nil {
			ctxLogger.Errorf("caught panic: %v : %s", p, debug.Stack())
			err = fmt.Errorf("panic: %v", p)
			resp = NewErrorResponse(req, err)
		}
		labelNamespace, labelName := metricLabels(namespace, name)
		d.metrics.ObserveDirective(labelNamespace, labelName, err, time.Since(start))
	}()

	ctxLogger.Info("handling directive")

	resp, err = d.dispatch(ctx, req)
	if err != nil {
		ctxLogger.WithError(err).Error("directive failed")
		return NewErrorResponse(req, err)
	}

	ctxLogger.Debugf("responding with %s/%s", resp.Event.Header.Namespace, resp.Event.Header.Name)
	return resp
}

func (d *Dispatcher) dispatch(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	if req == nil {
		req = &alexa.Request{}
	}
	if err := req.Validate(formats); err != nil {
		return nil, err
	}

	dir, err := parseDirective(req)
	if err != nil {
		return nil, err
	}

	switch v := dir.(type) {
	case discoverDirective:
		return d.handleDiscover(ctx, req)
	case acceptGrantDirective:
		return d.handleAcceptGrant(ctx, req, v)
	case reportStateDirective:
		return d.handleReportState(ctx, req, v)
	case setTargetTemperatureDirective:
		return d.handleSetTargetTemperature(ctx, req, v)
	case adjustTargetTemperatureDirective:
		return d.handleAdjustTargetTemperature(ctx, req, v)
	case setThermostatModeDirective:
		return d.handleSetThermostatMode(ctx, req, v)
	case powerDirective:
		return d.handlePower(ctx, req, v)
	case activateSceneDirective:
		return d.handleActivateScene(ctx, req, v)
	}

	namespace, name := req.Key()
	return nil, &UnsupportedDirectiveError{Namespace: namespace, Name: name}
}
