package handlers

import (
	"net/http"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

// AlexaHandler accepts directive envelopes over HTTP.  Once a body decodes,
// the reply is always an event with status 200, errors included.
type AlexaHandler struct {
	dispatcher *Dispatcher
}

func NewAlexaHandler(dispatcher *Dispatcher) AlexaHandler {
	return AlexaHandler{
		dispatcher: dispatcher,
	}
}

func (h *AlexaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req alexa.Request
	ctxLogger := logging.Logger(r.Context())

	if err := decodeJSONBody(w, r, &req); err != nil {
		ctxLogger.WithError(err).Errorf("decoding JSON")
		http.Error(w, "unable to parse JSON", http.StatusBadRequest)
		return
	}

	resp := h.dispatcher.Dispatch(r.Context(), &req)

	if err := sendJSONResponse(w, r, resp); err != nil {
		ctxLogger.WithError(err).Error("sending json response")
	}
}
