package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skinmarket "github.com/sc2skins/skinmarket"
	"github.com/sc2skins/skinmarket/skintest"
)

func testServer(t *testing.T) (*httptest.Server, skinmarket.Address) {
	t.Helper()

	conf := Config{
		Ticker:        "CRD",
		DeployerFunds: 1000,
	}
	deployer := skintest.NewAddress()
	ex, err := buildExecutor(conf, deployer)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(newGateway(ex, log).router())
	t.Cleanup(srv.Close)
	return srv, deployer
}

func postTx(t *testing.T, srv *httptest.Server, path string, sender skinmarket.Address, msg interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"path":   path,
		"sender": sender.String(),
		"msg":    msg,
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/tx", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func getJSON(t *testing.T, srv *httptest.Server, path string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestGatewayGenesisState(t *testing.T) {
	srv, deployer := testServer(t)

	status, payload := getJSON(t, srv, "/skins/1/metadata")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Golden Marine", payload["name"])
	assert.Equal(t, "Rare", payload["rarity"])

	status, payload = getJSON(t, srv, fmt.Sprintf("/accounts/%s/skins/4", deployer))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(20), payload["balance"])

	status, _ = getJSON(t, srv, "/skins/99/metadata")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGatewayListingFlow(t *testing.T) {
	srv, deployer := testServer(t)
	buyer := skintest.NewAddress()

	// Fund the buyer from the deployer wallet.
	status, _ := postTx(t, srv, "cash/send", deployer, map[string]interface{}{
		"src":    deployer.String(),
		"dest":   buyer.String(),
		"amount": map[string]interface{}{"amount": 10, "ticker": "CRD"},
	})
	require.Equal(t, http.StatusOK, status)

	// The deployer lists 5 Standard Marines for 10 CRD.
	status, _ = postTx(t, srv, "market/list", deployer, map[string]interface{}{
		"skin_id": 4,
		"amount":  5,
		"price":   map[string]interface{}{"amount": 10, "ticker": "CRD"},
	})
	require.Equal(t, http.StatusOK, status)

	status, payload := getJSON(t, srv, "/listings?active=true")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), payload["counter"])
	require.Len(t, payload["listings"], 1)

	// Underpaying is rejected without charging the buyer.
	status, _ = postTx(t, srv, "market/purchase", buyer, map[string]interface{}{
		"listing_id": 1,
		"payment":    map[string]interface{}{"amount": 9, "ticker": "CRD"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = postTx(t, srv, "market/purchase", buyer, map[string]interface{}{
		"listing_id": 1,
		"payment":    map[string]interface{}{"amount": 10, "ticker": "CRD"},
	})
	require.Equal(t, http.StatusOK, status)

	status, payload = getJSON(t, srv, fmt.Sprintf("/accounts/%s/skins/4", buyer))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), payload["balance"])

	// The closed listing stays readable.
	status, payload = getJSON(t, srv, "/listings/1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, payload["active"])

	// Buying it again conflicts.
	status, _ = postTx(t, srv, "market/purchase", buyer, map[string]interface{}{
		"listing_id": 1,
		"payment":    map[string]interface{}{"amount": 10, "ticker": "CRD"},
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestGatewayAuthorization(t *testing.T) {
	srv, deployer := testServer(t)
	stranger := skintest.NewAddress()

	// A stranger cannot mint.
	status, _ := postTx(t, srv, "skins/mint", stranger, map[string]interface{}{
		"to":      stranger.String(),
		"skin_id": 1,
		"amount":  100,
	})
	assert.Equal(t, http.StatusForbidden, status)

	// The deployer grants the minter role, then the former stranger can.
	status, _ = postTx(t, srv, "roles/grant", deployer, map[string]interface{}{
		"address": stranger.String(),
		"role":    "minter",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = postTx(t, srv, "skins/mint", stranger, map[string]interface{}{
		"to":      stranger.String(),
		"skin_id": 1,
		"amount":  100,
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestGatewayUnknownPath(t *testing.T) {
	srv, deployer := testServer(t)

	status, _ := postTx(t, srv, "no/such/path", deployer, map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, status)
}
