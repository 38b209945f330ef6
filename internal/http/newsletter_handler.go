package http

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
)

var newsletterEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewsletterSubscriber is the slice of the backend client the newsletter
// endpoints need.
type NewsletterSubscriber interface {
	SubscribeNewsletter(ctx context.Context, email string) (*backend.NewsletterResult, error)
	UnsubscribeNewsletter(ctx context.Context, email string) (*backend.NewsletterResult, error)
}

type NewsletterHandler struct {
	client  NewsletterSubscriber
	timeout time.Duration
}

func NewNewsletterHandler(client NewsletterSubscriber, timeout time.Duration) *NewsletterHandler {
	return &NewsletterHandler{
		client:  client,
		timeout: timeout,
	}
}

type NewsletterRequestDTO struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.client.SubscribeNewsletter)
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.client.UnsubscribeNewsletter)
}

func (h *NewsletterHandler) handle(w http.ResponseWriter, r *http.Request, call func(context.Context, string) (*backend.NewsletterResult, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req NewsletterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if !newsletterEmail.MatchString(email) {
		respondError(w, http.StatusBadRequest, "invalid_email", "email address is not valid")
		return
	}

	result, err := call(ctx, email)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
