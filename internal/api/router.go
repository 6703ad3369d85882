// Package api serves the dashboard queries over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"vaultScope/internal/auction"
	"vaultScope/internal/contracts"
	"vaultScope/internal/dashboard"
	"vaultScope/internal/model"
	"vaultScope/internal/vault"
)

const requestLimit = 1 << 20

// Service is the query surface the handlers call.
type Service interface {
	Vaults(ctx context.Context, owner string) ([]model.VaultSnapshot, error)
	VaultState(ctx context.Context, req dashboard.StateRequest) (vault.VaultState, error)
	Auctions(ctx context.Context, q dashboard.AuctionQuery) ([]auction.Row, error)
	Supply(ctx context.Context) (string, error)
	Contracts() []contracts.Contract
}

// Config holds the router settings.
type Config struct {
	Timeout time.Duration
}

type handlers struct {
	svc     Service
	logger  *zap.Logger
	timeout time.Duration
}

// New returns the HTTP handler for svc.
func New(cfg Config, svc Service, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	h := &handlers{svc: svc, logger: logger, timeout: cfg.Timeout}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/supply", h.supply)
	r.Get("/contracts", h.contracts)
	r.Route("/vaults", func(vr chi.Router) {
		vr.Get("/", h.listVaults)
		vr.Post("/new/simulate", h.simulateCreate)
		vr.Get("/{id}", h.getVault)
		vr.Post("/{id}/simulate", h.simulate)
	})
	r.Get("/auctions", h.auctions)

	return r
}

func (h *handlers) context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, h.timeout)
}

func (h *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

// supply responds with the bare total supply, as plain text.
func (h *handlers) supply(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r.Context())
	defer cancel()

	supply, err := h.svc.Supply(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(supply))
}

func (h *handlers) contracts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Contracts())
}

func (h *handlers) listVaults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r.Context())
	defer cancel()

	vaults, err := h.svc.Vaults(ctx, r.URL.Query().Get("owner"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vaults)
}

func (h *handlers) getVault(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r.Context())
	defer cancel()

	query := r.URL.Query()
	state, err := h.svc.VaultState(ctx, dashboard.StateRequest{
		ID:     chi.URLParam(r, "id"),
		Action: query.Get("action"),
		Wallet: query.Get("wallet"),
		Proxy:  query.Get("proxy"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handlers) simulate(w http.ResponseWriter, r *http.Request) {
	var req dashboard.StateRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.Create = false
	h.respondState(w, r, req)
}

func (h *handlers) simulateCreate(w http.ResponseWriter, r *http.Request) {
	var req dashboard.StateRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	req.ID = ""
	req.Create = true
	h.respondState(w, r, req)
}

func (h *handlers) respondState(w http.ResponseWriter, r *http.Request, req dashboard.StateRequest) {
	ctx, cancel := h.context(r.Context())
	defer cancel()

	state, err := h.svc.VaultState(ctx, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handlers) auctions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r.Context())
	defer cancel()

	query := r.URL.Query()
	myBids, _ := strconv.ParseBool(query.Get("my_bids"))
	rows, err := h.svc.Auctions(ctx, dashboard.AuctionQuery{
		Type:       query.Get("type"),
		Asset:      query.Get("asset"),
		Status:     query.Get("status"),
		Sort:       query.Get("sort"),
		Dir:        query.Get("dir"),
		Wallet:     query.Get("wallet"),
		Proxy:      query.Get("proxy"),
		MyBidsOnly: myBids,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, requestLimit)
	defer body.Close()
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, dashboard.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err)
	case errors.Is(err, dashboard.ErrUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		writeJSONError(w, http.StatusGatewayTimeout, err)
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSONError(w, http.StatusBadGateway, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	message := strings.TrimSpace(err.Error())
	if message == "" {
		message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": message})
}
