package checkout

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/spiceshop/storefront-go/pkg/config"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

func newCallbackServer(t *testing.T) *CallbackServer {
	t.Helper()
	server, err := NewCallbackServer(
		config.RazorpayConfig{KeyID: "rzp_test_key", CallbackAddr: "127.0.0.1:0"},
		logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	)
	if err != nil {
		t.Fatalf("NewCallbackServer: %v", err)
	}
	return server
}

func TestCheckoutPageEmbedsOrder(t *testing.T) {
	server := newCallbackServer(t)
	handler := server.handler(types.OrderPlacement{
		OrderNumber:     "ORD-42",
		RazorpayOrderID: "rzp_order_42",
	}, make(chan GatewayResult, 1))

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "rzp_order_42") || !strings.Contains(page, "rzp_test_key") {
		t.Fatalf("page must embed the order and key: %s", page)
	}
}

func TestCallbackDeliversSignedResult(t *testing.T) {
	server := newCallbackServer(t)
	results := make(chan GatewayResult, 1)
	ts := httptest.NewServer(server.handler(types.OrderPlacement{RazorpayOrderID: "rzp_order_42"}, results))
	defer ts.Close()

	form := url.Values{
		"razorpay_payment_id": {"pay_7"},
		"razorpay_order_id":   {"rzp_order_42"},
		"razorpay_signature":  {"sig_abc"},
	}
	resp, err := http.PostForm(ts.URL+"/callback", form)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	select {
	case result := <-results:
		if result.PaymentID != "pay_7" || result.Signature != "sig_abc" {
			t.Fatalf("unexpected result: %+v", result)
		}
	default:
		t.Fatalf("no result delivered")
	}
}

func TestCallbackRejectsIncompleteResult(t *testing.T) {
	server := newCallbackServer(t)
	results := make(chan GatewayResult, 1)
	ts := httptest.NewServer(server.handler(types.OrderPlacement{}, results))
	defer ts.Close()

	resp, err := http.PostForm(ts.URL+"/callback", url.Values{
		"razorpay_payment_id": {"pay_7"},
	})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(results) != 0 {
		t.Fatalf("incomplete result must not be delivered")
	}
}
