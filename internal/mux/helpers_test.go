package mux

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// doJSON sends req and decodes the body into respObj when the status matches
func doJSON(t *testing.T, req *http.Request, respObj interface{}, statusCode int) {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if !assert.NoError(t, err) {
		return
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if !assert.NoError(t, err) {
		return
	}

	if !assert.Equal(t, statusCode, resp.StatusCode, string(body)) || respObj == nil {
		return
	}

	assert.NoError(t, json.Unmarshal(body, respObj))
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if !assert.NoError(t, err) {
		return
	}

	doJSON(t, req, respObj, statusCode)
}
