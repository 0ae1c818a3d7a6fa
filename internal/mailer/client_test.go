package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]string{"id": "msg-42"})
	}))
	defer server.Close()

	client := NewClient("re_test_key", "orders@camerastore.example", nil)
	client.baseURL = server.URL

	result, err := client.Send(context.Background(), SendRequest{
		To:      []string{"alice@example.com"},
		Subject: "Your order shipped",
		HTML:    "<p>On the way!</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-42", result.ID)

	assert.Equal(t, "orders@camerastore.example", received["from"])
	assert.Equal(t, []interface{}{"alice@example.com"}, received["to"])
	assert.Equal(t, "Your order shipped", received["subject"])
	assert.Equal(t, "<p>On the way!</p>", received["html"])
	assert.NotContains(t, received, "text")
}

func TestSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	client := NewClient("re_test_key", "bad-from", nil)
	client.baseURL = server.URL

	_, err := client.Send(context.Background(), SendRequest{
		To:      []string{"alice@example.com"},
		Subject: "x",
		Text:    "y",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSendValidation(t *testing.T) {
	client := NewClient("", "from@example.com", nil)
	_, err := client.Send(context.Background(), SendRequest{To: []string{"a@b.c"}, Subject: "x"})
	assert.Error(t, err, "missing API key is rejected")

	client = NewClient("key", "from@example.com", nil)
	_, err = client.Send(context.Background(), SendRequest{Subject: "x"})
	assert.Error(t, err, "empty recipient list is rejected")
}
