package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

const (
	// SourcePrediction marks an expiry date computed by the external
	// shelf-life service; SourceFallback marks the deterministic default
	// applied when the service is unavailable.
	SourcePrediction = "prediction"
	SourceFallback   = "fallback"

	// FallbackDays is the shelf life assumed when the prediction service
	// cannot be reached.
	FallbackDays = 7

	requestTimeout = 5 * time.Second
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "foodwise_prediction_requests_total",
	Help: "Shelf-life prediction calls by outcome source.",
}, []string{"source"})

type (
	// Predictor is the gateway the item service talks to. Predict never
	// returns an error: failures are absorbed by the fallback policy.
	Predictor interface {
		Predict(ctx context.Context, req Request, now time.Time) Result
	}

	Request struct {
		ProductName      string
		StorageCondition string
		ItemCondition    string
		PurchaseDate     time.Time // zero value means absent
	}

	Result struct {
		ExpiryDate    time.Time `json:"expiry_date"`
		PredictedDays int       `json:"predicted_days"`
		Source        string    `json:"source"`
	}

	client struct {
		baseURL    string
		httpClient *http.Client
		limiter    *rate.Limiter
	}

	predictRequest struct {
		ProductName      string `json:"product_name"`
		StorageCondition string `json:"storage_condition"`
		ItemCondition    string `json:"item_condition_on_purchase"`
	}

	predictResponse struct {
		PredictedExpiryDays *int `json:"predicted_expiry_days"`
	}
)

// NewClient builds a gateway for the shelf-life service at baseURL. Outbound
// calls are throttled to keep a burst of item additions from hammering the
// model server.
func NewClient(baseURL string) Predictor {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

// Predict asks the external service for a shelf life in days and converts it
// into a concrete expiry date. The date is anchored on the purchase date, or
// on now when the purchase date is absent. On any failure the fallback policy
// applies: 7 days from now, with the error logged rather than propagated.
func (c *client) Predict(ctx context.Context, req Request, now time.Time) Result {
	days, err := c.predictDays(ctx, req)
	if err != nil {
		log.Printf("prediction service unavailable, applying fallback: %v", err)
		requestsTotal.WithLabelValues(SourceFallback).Inc()
		return Result{
			ExpiryDate:    now.AddDate(0, 0, FallbackDays),
			PredictedDays: FallbackDays,
			Source:        SourceFallback,
		}
	}

	basis := req.PurchaseDate
	if basis.IsZero() {
		basis = now
	}

	requestsTotal.WithLabelValues(SourcePrediction).Inc()
	return Result{
		ExpiryDate:    basis.AddDate(0, 0, days),
		PredictedDays: days,
		Source:        SourcePrediction,
	}
}

func (c *client) predictDays(ctx context.Context, req Request) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	storage := req.StorageCondition
	if storage == "" {
		storage = "fridge"
	}
	condition := req.ItemCondition
	if condition == "" {
		condition = "fresh"
	}

	body, err := json.Marshal(predictRequest{
		ProductName:      req.ProductName,
		StorageCondition: storage,
		ItemCondition:    condition,
	})
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("prediction service error: %s - %s", resp.Status, string(respBody))
	}

	var predicted predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predicted); err != nil {
		return 0, err
	}
	if predicted.PredictedExpiryDays == nil {
		return 0, fmt.Errorf("prediction response missing predicted_expiry_days")
	}

	return *predicted.PredictedExpiryDays, nil
}
