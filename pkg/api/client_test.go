package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiceshop/storefront-go/pkg/config"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

type staticTokens string

func (s staticTokens) AdminToken() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
	client, err := NewClient(config.BackendConfig{URL: srv.URL, HTTPTimeout: 5 * time.Second}, logg, staticTokens(token))
	require.NoError(t, err)
	return client
}

func TestGetCartTreatsNotFoundAsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no cart"}`, http.StatusNotFound)
	}), "")

	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestErrorUsesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"quantity exceeds available stock"}`))
	}), "")

	err := client.UpdateCartItem(context.Background(), 3, 99)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "quantity exceeds available stock", typed.Message())
}

func TestErrorSynthesizesStatusMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}), "")

	err := client.ClearCart(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, pkgerrors.CodeBackend, typed.Code())
	assert.Equal(t, "status 502", typed.Message())
}

func TestNetworkFailureIsNetworkCode(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
	client, err := NewClient(config.BackendConfig{URL: srv.URL, HTTPTimeout: time.Second}, logg, nil)
	require.NoError(t, err)

	_, err = client.CheckSession(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNetwork), "expected network code, got %v", err)
}

func TestMalformedBodyIsDecodeCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}), "")

	_, err := client.GetSpice(context.Background(), 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDecode), "expected decode code, got %v", err)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, "")
	_, err := client.AllOrders(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized), "expected unauthorized without token, got %v", err)

	client = newTestClient(t, handler, "tok-123")
	_, err = client.AllOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestCookiesPersistAcrossRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "abc", Path: "/"})
	})
	var gotCookie string
	mux.HandleFunc("/api/auth/check-session", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("SESSION"); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte(`{"authenticated":true,"email":"a@b.c"}`))
	})

	client := newTestClient(t, mux, "")
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, types.Credentials{Email: "a@b.c", Password: "pw"}))

	status, err := client.CheckSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", gotCookie, "session cookie not carried")
	assert.True(t, status.Authenticated)
}

func TestProductQueryEncoding(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"products":[],"page":1,"limit":12,"totalPages":0,"totalCount":0}`))
	}), "")

	min := decimal.NewFromInt(100)
	inStock := true
	_, err := client.ListProducts(context.Background(), ProductQuery{
		Page:     2,
		Limit:    12,
		Search:   "pepper",
		MinPrice: &min,
		InStock:  &inStock,
	})
	require.NoError(t, err)
	for _, want := range []string{"page=2", "limit=12", "search=pepper", "minPrice=100", "inStock=true"} {
		assert.Contains(t, gotQuery, want)
	}
	assert.False(t, strings.Contains(gotQuery, "maxPrice"), "unset filters must not be sent: %q", gotQuery)
	assert.False(t, strings.Contains(gotQuery, "qualityClass"), "unset filters must not be sent: %q", gotQuery)
}

func TestVerifyPaymentRejectsUnsuccessfulBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"signature mismatch"}`))
	}), "")

	err := client.VerifyPayment(context.Background(), types.PaymentVerification{
		RazorpayPaymentID: "pay_1",
		RazorpayOrderID:   "order_1",
		RazorpaySignature: "sig",
		OrderID:           44,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, pkgerrors.CodePayment, typed.Code())
	assert.Equal(t, "signature mismatch", typed.Message())
}

func TestContextCancellationAbortsRequest(t *testing.T) {
	started := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}), "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.GetCart(ctx)
		done <- err
	}()
	<-started
	cancel()

	select {
	case err := <-done:
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNetwork), "expected network code on cancellation, got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled request did not return")
	}
}
