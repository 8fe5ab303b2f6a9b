package eoliaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
)

const defaultLanguage = "ja-jp"

// APIError is returned when the device API answers with a non-2xx status
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("device API error: %s: %s", e.Status, e.Body)
}

// Live talks to the Eolia device API over HTTP.  The underlying HTTP client
// is built on first use and reused for the life of the value.
type Live struct {
	baseURL    string
	credential string
	language   string
	timeout    time.Duration
	retries    int
	metrics    *metrics.Metrics

	once *sync.Once
	rest *resty.Client
}

func NewLiveClient(baseURL string, credential string) *Live {
	return &Live{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		credential: credential,
		language:   defaultLanguage,
		once:       &sync.Once{},
	}
}

func (c *Live) clone() *Live {
	nc := *c
	nc.once = &sync.Once{}
	nc.rest = nil
	return &nc
}

func (c *Live) WithTimeout(d time.Duration) *Live {
	nc := c.clone()
	nc.timeout = d
	return nc
}

func (c *Live) WithRetries(n int) *Live {
	nc := c.clone()
	nc.retries = n
	return nc
}

func (c *Live) WithLanguage(lang string) *Live {
	nc := c.clone()
	nc.language = lang
	return nc
}

func (c *Live) WithMetrics(m *metrics.Metrics) *Live {
	nc := c.clone()
	nc.metrics = m
	return nc
}

// The credential is either "<type> <token>" or a bare bearer token
func tokenFromCredential(credential string) *oauth2.Token {
	credential = strings.TrimSpace(credential)
	if i := strings.IndexByte(credential, ' '); i > 0 {
		return &oauth2.Token{
			TokenType:   credential[:i],
			AccessToken: strings.TrimSpace(credential[i+1:]),
		}
	}

	return &oauth2.Token{AccessToken: credential}
}

func (c *Live) api() *resty.Client {
	c.once.Do(func() {
		ts := oauth2.StaticTokenSource(tokenFromCredential(c.credential))
		httpClient := oauth2.NewClient(context.Background(), ts)

		c.rest = resty.NewWithClient(httpClient).
			SetBaseURL(c.baseURL).
			SetRetryCount(c.retries).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json; charset=UTF-8").
			SetHeader("Accept-Language", c.language)

		if c.timeout > 0 {
			c.rest.SetTimeout(c.timeout)
		}
	})

	return c.rest
}

func checkResponse(resp *resty.Response) error {
	if resp.IsError() {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}

	return nil
}

func (c *Live) Devices(ctx context.Context) (devices []Device, err error) {
	defer func() { c.metrics.ObserveAPIRequest("devices", err) }()

	resp, err := c.api().R().SetContext(ctx).Get("/devices")
	if err != nil {
		return nil, errors.Wrap(err, "listing devices")
	}
	if err := checkResponse(resp); err != nil {
		return nil, errors.Wrap(err, "listing devices")
	}

	var items []deviceInfo
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, errors.Wrap(err, "decoding device list")
	}

	devices = make([]Device, 0, len(items))
	for i := range items {
		devices = append(devices, items[i].Unmarshal())
	}

	return devices, nil
}

func (c *Live) GetDeviceStatus(ctx context.Context, deviceID int) (status *DeviceStatus, err error) {
	defer func() { c.metrics.ObserveAPIRequest("get_status", err) }()

	resp, err := c.api().R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(deviceID)).
		Get("/devices/{id}")
	if err != nil {
		return nil, errors.Wrapf(err, "fetching status of device %d", deviceID)
	}
	if err := checkResponse(resp); err != nil {
		return nil, errors.Wrapf(err, "fetching status of device %d", deviceID)
	}

	var item deviceStatus
	if err := json.Unmarshal(resp.Body(), &item); err != nil {
		return nil, errors.Wrapf(err, "decoding status of device %d", deviceID)
	}

	return item.Unmarshal(), nil
}

func (c *Live) SendCommand(ctx context.Context, deviceID int, patch Patch) (err error) {
	defer func() { c.metrics.ObserveAPIRequest("send_command", err) }()

	logging.Logger(ctx).Debugf("sending command to device %d: %s", deviceID, patch)

	resp, err := c.api().R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(deviceID)).
		SetBody(patch).
		Post("/devices/{id}/command/send")
	if err != nil {
		return errors.Wrapf(err, "sending command %s to device %d", patch, deviceID)
	}
	if err := checkResponse(resp); err != nil {
		return errors.Wrapf(err, "sending command %s to device %d", patch, deviceID)
	}

	return nil
}
