package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bambora-bridge/internal/logger"
	"bambora-bridge/internal/order"
	"bambora-bridge/internal/payment"

	"go.uber.org/zap"
)

// Handler exposes the payment operations to the host platform's payment
// hooks. Each request carries the order snapshot the host holds; this service
// never reads the host's sales storage itself.
type Handler struct {
	svc  *payment.Service
	repo payment.Repository
}

func NewHandler(svc *payment.Service, repo payment.Repository) *Handler {
	return &Handler{svc: svc, repo: repo}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /payments/window", h.PaymentWindow)
	mux.HandleFunc("POST /payments/capture", h.Capture)
	mux.HandleFunc("POST /payments/refund", h.Refund)
	mux.HandleFunc("POST /payments/void", h.Void)
	mux.HandleFunc("POST /payments/cancel", h.Cancel)
	mux.HandleFunc("GET /payments/types", h.PaymentTypes)
	mux.HandleFunc("GET /transactions/{id}", h.Transaction)
}

type captureRequest struct {
	Order   *order.Order   `json:"order"`
	Invoice *order.Invoice `json:"invoice"`
	Amount  float64        `json:"amount"`
}

type refundRequest struct {
	Order      *order.Order      `json:"order"`
	CreditMemo *order.CreditMemo `json:"creditMemo"`
	Amount     float64           `json:"amount"`
}

type orderRequest struct {
	Order *order.Order `json:"order"`
}

func (h *Handler) PaymentWindow(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.svc.PaymentWindow(r.Context(), req.Order)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": resp.Token,
		"url":   resp.URL,
	})
}

func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if !decode(w, r, &req) {
		return
	}

	rec, ok := h.record(w, r, req.Order)
	if !ok {
		return
	}

	if err := h.svc.Capture(r.Context(), rec, req.Order, req.Invoice, req.Amount); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if !decode(w, r, &req) {
		return
	}

	rec, ok := h.record(w, r, req.Order)
	if !ok {
		return
	}

	if err := h.svc.Refund(r.Context(), rec, req.Order, req.CreditMemo, req.Amount); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Void(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decode(w, r, &req) {
		return
	}

	rec, ok := h.record(w, r, req.Order)
	if !ok {
		return
	}

	if err := h.svc.Void(r.Context(), rec, req.Order); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decode(w, r, &req) {
		return
	}

	rec, ok := h.record(w, r, req.Order)
	if !ok {
		return
	}

	if err := h.svc.Cancel(r.Context(), rec, req.Order); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) PaymentTypes(w http.ResponseWriter, r *http.Request) {
	currencyCode := r.URL.Query().Get("currency")
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if currencyCode == "" || err != nil {
		http.Error(w, "currency and amount are required", http.StatusBadRequest)
		return
	}

	ids, err := h.svc.PaymentTypes(r.Context(), currencyCode, amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]int{"paymentGroupIds": ids})
}

func (h *Handler) Transaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "transaction id is required", http.StatusBadRequest)
		return
	}

	txn, err := h.svc.Transaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request, o *order.Order) (*payment.Record, bool) {
	if o == nil {
		http.Error(w, "order is required", http.StatusBadRequest)
		return nil, false
	}

	rec, err := h.repo.RecordByOrder(r.Context(), o.IncrementID)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return rec, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps orchestrator errors onto HTTP statuses. Gateway rejections
// are the host action failing, reported as 502 with the gateway's message so
// the host can surface it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Warn("payment operation failed", zap.Error(err))

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, payment.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, payment.ErrNoOrder), errors.Is(err, payment.ErrNoReference),
		errors.Is(err, payment.ErrNoInvoice), errors.Is(err, payment.ErrNoCreditMemo):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
