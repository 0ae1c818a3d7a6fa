package shiprate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateServer(t *testing.T, tokenCalls *int32, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			atomic.AddInt32(tokenCalls, 1)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok-123",
				"expires_in":   expiresIn,
			})
		case "/rate/v1/rates/quotes":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"output": map[string]interface{}{
					"rateReplyDetails": []map[string]interface{}{
						{
							"serviceName": "FedEx Ground",
							"ratedShipmentDetails": []map[string]interface{}{
								{"totalNetCharge": 12.45},
							},
						},
						{
							"serviceName": "FedEx 2Day",
							"ratedShipmentDetails": []map[string]interface{}{
								{"totalNetCharge": 28.10},
							},
						},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetRates(t *testing.T) {
	var tokenCalls int32
	server := newRateServer(t, &tokenCalls, 3600)
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", "acct-1", nil)
	quotes, err := client.GetRates(context.Background(), RateRequest{FromZip: "50010", ToZip: "94105", WeightLB: 2})
	require.NoError(t, err)

	require.Len(t, quotes, 2)
	assert.Equal(t, "FedEx Ground", quotes[0].Service)
	assert.Equal(t, 12.45, quotes[0].Amount)
	assert.Equal(t, "FedEx 2Day", quotes[1].Service)
}

func TestTokenCached(t *testing.T) {
	var tokenCalls int32
	server := newRateServer(t, &tokenCalls, 3600)
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", "acct-1", nil)
	ctx := context.Background()

	_, err := client.GetRates(ctx, RateRequest{FromZip: "50010", ToZip: "94105", WeightLB: 1})
	require.NoError(t, err)
	_, err = client.GetRates(ctx, RateRequest{FromZip: "50010", ToZip: "60601", WeightLB: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "second call reuses the cached token")
}

func TestTokenRefreshedNearExpiry(t *testing.T) {
	var tokenCalls int32
	// expires_in of 30s is inside the 60s safety margin, so every call
	// fetches a fresh token.
	server := newRateServer(t, &tokenCalls, 30)
	defer server.Close()

	client := NewClient(server.URL, "id", "secret", "acct-1", nil)
	ctx := context.Background()

	_, err := client.GetRates(ctx, RateRequest{FromZip: "50010", ToZip: "94105", WeightLB: 1})
	require.NoError(t, err)
	_, err = client.GetRates(ctx, RateRequest{FromZip: "50010", ToZip: "94105", WeightLB: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&tokenCalls))
}

func TestGetRatesUnconfigured(t *testing.T) {
	client := NewClient("http://example.invalid", "", "", "", nil)
	_, err := client.GetRates(context.Background(), RateRequest{FromZip: "50010", ToZip: "94105", WeightLB: 1})
	assert.Error(t, err)
}

func TestTokenExpiryMath(t *testing.T) {
	c := &Client{}
	c.accessToken = "cached"
	c.tokenExpiry = time.Now().Add(time.Minute)

	tok, err := c.token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", tok)
}
