package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

func main() {
	if v := os.Getenv("BASE_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. Quote lookup (falls back to demo data when the API key is throttled)
	checkEndpoint("GET", "/api/quotes/crypto/BTC", nil, 200)
	checkEndpoint("GET", "/api/quotes/stocks/AAPL", nil, 200)

	// 3. Price history
	checkEndpoint("GET", "/api/quotes/crypto/BTC/history?days=7", nil, 200)

	// 4. Portfolio before trading
	checkEndpoint("GET", "/api/portfolio", nil, 200)

	// 5. Buy, then sell the same lot back
	checkEndpoint("POST", "/api/trades", map[string]any{
		"side": "buy", "symbol": "ADA", "quantity": "100", "price": "1.05",
	}, 201)
	checkEndpoint("POST", "/api/trades", map[string]any{
		"side": "sell", "symbol": "ADA", "quantity": "100", "price": "1.05",
	}, 201)

	// 6. An over-sized sell must be rejected without touching state
	checkEndpoint("POST", "/api/trades", map[string]any{
		"side": "sell", "symbol": "ADA", "quantity": "999999", "price": "1.05",
	}, 409)

	// 7. Transaction log
	checkEndpoint("GET", "/api/transactions", nil, 200)

	// 8. Profile view and edit
	checkEndpoint("GET", "/api/profile", nil, 200)
	checkEndpoint("PUT", "/api/profile", map[string]any{
		"name": "E2E User", "email": "e2e@example.com",
	}, 200)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}
