package checkout

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spiceshop/storefront-go/pkg/config"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// CallbackServer collects a Razorpay payment through a loopback HTTP
// server: it serves a one-shot checkout page, the gateway posts the signed
// result back, and the server shuts down with the triple in hand.
type CallbackServer struct {
	keyID  string
	addr   string
	logger *logger.Logger
}

// NewCallbackServer builds the loopback gateway from config. The default
// address binds an ephemeral localhost port.
func NewCallbackServer(cfg config.RazorpayConfig, logg *logger.Logger) (*CallbackServer, error) {
	if cfg.KeyID == "" {
		return nil, fmt.Errorf("razorpay key id required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &CallbackServer{keyID: cfg.KeyID, addr: cfg.CallbackAddr, logger: logg}, nil
}

var checkoutPage = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head><title>Spiceshop Checkout</title></head>
<body>
<script src="https://checkout.razorpay.com/v1/checkout.js"></script>
<script>
new Razorpay({
  key: {{.KeyID}},
  order_id: {{.OrderID}},
  name: "Spiceshop",
  description: {{.Description}},
  handler: function (resp) {
    var form = document.createElement("form");
    form.method = "POST";
    form.action = "/callback";
    for (var field in resp) {
      var input = document.createElement("input");
      input.type = "hidden";
      input.name = field;
      input.value = resp[field];
      form.appendChild(input);
    }
    document.body.appendChild(form);
    form.submit();
  }
}).open();
</script>
</body>
</html>`))

// Collect serves the checkout page and blocks until the gateway posts back
// or ctx ends. The page URL is logged at info level for the user to open.
func (s *CallbackServer) Collect(ctx context.Context, placement types.OrderPlacement) (GatewayResult, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return GatewayResult{}, pkgerrors.Wrap(pkgerrors.CodePayment, err, "cannot bind payment callback server")
	}

	results := make(chan GatewayResult, 1)
	server := &http.Server{Handler: s.handler(placement, results), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error(ctx, "payment callback server failed", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://%s/", listener.Addr())
	s.logger.Info(s.logger.WithField(ctx, "url", url), "open the checkout page in a browser to pay")

	select {
	case result := <-results:
		return result, nil
	case <-ctx.Done():
		return GatewayResult{}, pkgerrors.Wrap(pkgerrors.CodePayment, ctx.Err(), "payment was not completed")
	}
}

// handler serves the one-shot checkout page and the signed-result callback.
func (s *CallbackServer) handler(placement types.OrderPlacement, results chan<- GatewayResult) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = checkoutPage.Execute(w, map[string]string{
			"KeyID":       s.keyID,
			"OrderID":     placement.RazorpayOrderID,
			"Description": "Order " + placement.OrderNumber,
		})
	})
	router.Post("/callback", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed callback", http.StatusBadRequest)
			return
		}
		result := GatewayResult{
			PaymentID: r.PostFormValue("razorpay_payment_id"),
			OrderID:   r.PostFormValue("razorpay_order_id"),
			Signature: r.PostFormValue("razorpay_signature"),
		}
		if result.PaymentID == "" || result.OrderID == "" || result.Signature == "" {
			http.Error(w, "incomplete payment result", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Payment received. You can close this window and return to the terminal.")
		select {
		case results <- result:
		default:
		}
	})
	return router
}
