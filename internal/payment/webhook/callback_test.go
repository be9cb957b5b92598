package webhook

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bambora-bridge/internal/payment"

	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	references map[string]string
	setErr     error
	conflict   bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{references: make(map[string]string)}
}

func (s *stubRepo) SaveSession(ctx context.Context, orderNumber, token, url string) error {
	return nil
}

func (s *stubRepo) SetGatewayReference(ctx context.Context, orderNumber, reference string) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if s.conflict {
		return false, nil
	}
	s.references[orderNumber] = reference
	return true, nil
}

func (s *stubRepo) RecordByOrder(ctx context.Context, orderNumber string) (*payment.Record, error) {
	return nil, payment.ErrRecordNotFound
}

func (s *stubRepo) AppendTransaction(ctx context.Context, rec *payment.Record, kind string) error {
	return nil
}

func callbackHash(key string, values ...string) string {
	var concat string
	for _, v := range values {
		concat += v
	}
	sum := md5.Sum([]byte(concat + key))
	return hex.EncodeToString(sum[:])
}

func TestCallback(t *testing.T) {
	const md5Key = "md5-secret"

	t.Run("Valid callback records reference", func(t *testing.T) {
		repo := newStubRepo()
		h := NewHandler(repo, md5Key)

		hash := callbackHash(md5Key, "txn-1", "100000017", "28125", "DKK")
		target := fmt.Sprintf("/bambora/callback?txnid=txn-1&orderid=100000017&amount=28125&currency=DKK&hash=%s", hash)

		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()

		h.Callback(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
		assert.Equal(t, "txn-1", repo.references["100000017"])
	})

	t.Run("Invalid hash rejected", func(t *testing.T) {
		repo := newStubRepo()
		h := NewHandler(repo, md5Key)

		target := "/bambora/callback?txnid=txn-1&orderid=100000017&amount=28125&currency=DKK&hash=bogus"
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()

		h.Callback(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, repo.references)
	})

	t.Run("Empty key disables hash validation", func(t *testing.T) {
		repo := newStubRepo()
		h := NewHandler(repo, "")

		req := httptest.NewRequest("GET", "/bambora/callback?txnid=txn-1&orderid=100000017", nil)
		w := httptest.NewRecorder()

		h.Callback(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "txn-1", repo.references["100000017"])
	})

	t.Run("Missing params rejected", func(t *testing.T) {
		h := NewHandler(newStubRepo(), md5Key)

		req := httptest.NewRequest("GET", "/bambora/callback?orderid=100000017", nil)
		w := httptest.NewRecorder()

		h.Callback(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := newStubRepo()
		repo.setErr = errors.New("db down")
		h := NewHandler(repo, "")

		req := httptest.NewRequest("GET", "/bambora/callback?txnid=txn-1&orderid=100000017", nil)
		w := httptest.NewRecorder()

		h.Callback(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Duplicate with conflicting reference still answers 200", func(t *testing.T) {
		repo := newStubRepo()
		repo.conflict = true
		h := NewHandler(repo, "")

		req := httptest.NewRequest("GET", "/bambora/callback?txnid=txn-other&orderid=100000017", nil)
		w := httptest.NewRecorder()

		h.Callback(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidHash(t *testing.T) {
	t.Run("Order of params is preserved", func(t *testing.T) {
		key := "k"
		hash := callbackHash(key, "b", "a")
		raw := fmt.Sprintf("second=b&first=a&hash=%s", hash)
		assert.True(t, validHash(raw, key))

		// same values, different wire order -> different hash input
		rawReordered := fmt.Sprintf("first=a&second=b&hash=%s", hash)
		assert.False(t, validHash(rawReordered, key))
	})

	t.Run("Escaped values are unescaped before hashing", func(t *testing.T) {
		key := "k"
		hash := callbackHash(key, "a b")
		raw := fmt.Sprintf("v=a%%20b&hash=%s", hash)
		assert.True(t, validHash(raw, key))
	})
}
