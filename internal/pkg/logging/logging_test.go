package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWithoutContext(t *testing.T) {
	entry := Logger(nil)

	assert.Contains(t, entry.Data, "instance")
	assert.NotContains(t, entry.Data, "txnid")
}

func TestLoggerCarriesRequestFields(t *testing.T) {
	ctx := WithTxnID(context.Background(), "txn-1")
	ctx = WithCorrelationID(ctx, "corr-1")
	ctx = WithDirective(ctx, "Alexa.PowerController", "TurnOn", "42")

	entry := Logger(ctx)

	assert.Equal(t, "txn-1", entry.Data["txnid"])
	assert.Equal(t, "corr-1", entry.Data["correlationid"])
	assert.Equal(t, "Alexa.PowerController", entry.Data["namespace"])
	assert.Equal(t, "TurnOn", entry.Data["directive"])
	assert.Equal(t, "42", entry.Data["endpoint"])
}

func TestLoggerOmitsEmptyEndpoint(t *testing.T) {
	ctx := WithDirective(context.Background(), "Alexa.Discovery", "Discover", "")

	entry := Logger(ctx)

	assert.Equal(t, "Discover", entry.Data["directive"])
	assert.NotContains(t, entry.Data, "endpoint")
}
