package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type RequestOptions struct {
	Method    string
	URL       string
	AuthToken string
	Body      any
}

type TestResponse struct {
	Code int
	Body []byte
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions, expectedStatus int) *TestResponse {
	t.Helper()

	var requestBody *bytes.Buffer
	if options.Body != nil {
		bodyJSON, err := json.Marshal(options.Body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(options.Method, options.URL, requestBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if options.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, expectedStatus, w.Code, "unexpected status code, body: %s", w.Body.String())

	return &TestResponse{
		Code: w.Code,
		Body: w.Body.Bytes(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{Method: "GET", URL: url, AuthToken: authToken}, expectedStatus)
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	response any,
) {
	t.Helper()
	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshalResponse(t, resp, response)
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return MakeRequest(
		t,
		router,
		RequestOptions{Method: "POST", URL: url, AuthToken: authToken, Body: body},
		expectedStatus,
	)
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	t.Helper()
	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshalResponse(t, resp, response)
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return MakeRequest(
		t,
		router,
		RequestOptions{Method: "PUT", URL: url, AuthToken: authToken, Body: body},
		expectedStatus,
	)
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	t.Helper()
	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	unmarshalResponse(t, resp, response)
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()
	return MakeRequest(t, router, RequestOptions{Method: "DELETE", URL: url, AuthToken: authToken}, expectedStatus)
}

func unmarshalResponse(t *testing.T, resp *TestResponse, response any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body, response); err != nil {
		t.Fatalf("failed to unmarshal response: %v, body: %s", err, string(resp.Body))
	}
}
