package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"

	"holdem-server/pkg/account"
)

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(NewMux("v1.2.3", account.NewMemory(10000)))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
