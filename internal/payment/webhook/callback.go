package webhook

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bambora-bridge/internal/currency"
	"bambora-bridge/internal/logger"
	"bambora-bridge/internal/payment"

	"go.uber.org/zap"
)

// Handler receives the gateway's server-to-server callback after a completed
// checkout and records the transaction reference on the payment record.
type Handler struct {
	repo   payment.Repository
	md5Key string
}

func NewHandler(repo payment.Repository, md5Key string) *Handler {
	if md5Key == "" {
		logger.L().Warn("MD5 key is empty, callback hash validation is disabled")
	}
	return &Handler{repo: repo, md5Key: md5Key}
}

// Callback is the route handler for the gateway callback. The gateway
// retries until it gets a 200, so duplicate deliveries must succeed.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	q := r.URL.Query()
	txnID := q.Get("txnid")
	orderNumber := q.Get("orderid")

	if txnID == "" || orderNumber == "" {
		http.Error(w, "missing txnid or orderid", http.StatusBadRequest)
		return
	}

	if !validHash(r.URL.RawQuery, h.md5Key) {
		log.Warn("callback hash mismatch", zap.String("order", orderNumber))
		http.Error(w, "invalid callback hash", http.StatusUnauthorized)
		return
	}

	set, err := h.repo.SetGatewayReference(r.Context(), orderNumber, txnID)
	if err != nil {
		log.Error("failed to record gateway reference", zap.Error(err))
		http.Error(w, "failed to record transaction", http.StatusInternalServerError)
		return
	}
	if !set {
		// A different reference is already recorded; answer 200 so the
		// gateway stops retrying, but leave a trace.
		log.Warn("callback for order with conflicting reference",
			zap.String("order", orderNumber),
			zap.String("txnid", txnID),
		)
	}

	if amountStr := q.Get("amount"); amountStr != "" {
		if amount, err := strconv.ParseInt(amountStr, 10, 64); err == nil {
			minorUnits := currency.MinorUnits(q.Get("currency"))
			log.Info("callback accepted",
				zap.String("order", orderNumber),
				zap.String("txnid", txnID),
				zap.Float64("amount", currency.ToMajorUnits(amount, minorUnits)),
				zap.String("currency", q.Get("currency")),
			)
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// validHash checks the gateway's MD5 checksum: the values of every query
// parameter except hash, concatenated in the order they were sent, followed
// by the shared MD5 key. An empty key disables the check.
func validHash(rawQuery, key string) bool {
	if key == "" {
		return true
	}

	var b strings.Builder
	var hash string
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		unescaped, err := url.QueryUnescape(v)
		if err != nil {
			unescaped = v
		}
		if k == "hash" {
			hash = unescaped
			continue
		}
		b.WriteString(unescaped)
	}
	b.WriteString(key)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:]) == hash
}
