package subscriptions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bissquit/newsletter/internal/pkg/ctxlog"
	"github.com/bissquit/newsletter/internal/pkg/httputil"
	"github.com/bissquit/newsletter/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Subscription outcomes reported to metrics.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrMalformedInput, Status: http.StatusBadRequest, Message: "name and email are required"},
	{Error: ErrInvalidName, Status: http.StatusBadRequest},
	{Error: ErrInvalidEmail, Status: http.StatusBadRequest},
}

// Handler handles HTTP requests for the subscriptions module.
type Handler struct {
	service   *Service
	validator *FormValidator
}

// NewHandler creates a new subscriptions handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: NewFormValidator(),
	}
}

// RegisterRoutes registers subscription routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/subscriptions", h.Subscribe)
}

// Subscribe handles POST /subscriptions with a form-urlencoded body.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.handleError(w, r, fmt.Errorf("%w: %w", ErrMalformedInput, err))
		return
	}

	form, err := ParseSubscribeForm(r.PostForm)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	input, err := h.validator.Validate(form)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	subscriber, err := h.service.Subscribe(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	metrics.SubscriptionsTotal.WithLabelValues(outcomeAccepted).Inc()
	ctxlog.FromContext(r.Context()).Info("subscriber created", "subscriber_id", subscriber.ID.String())

	httputil.Empty(w, http.StatusOK)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrStoreFault) {
		metrics.SubscriptionsTotal.WithLabelValues(outcomeFailed).Inc()
	} else {
		metrics.SubscriptionsTotal.WithLabelValues(outcomeRejected).Inc()
		ctxlog.FromContext(r.Context()).Debug("subscription rejected", "reason", err)
	}

	httputil.HandleError(r.Context(), w, err, errorMappings)
}
