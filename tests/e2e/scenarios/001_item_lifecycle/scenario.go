package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type itemList struct {
	Items []item `json:"items"`
	Count int    `json:"count"`
}

var client = &http.Client{
	Timeout: 30 * time.Second,
}

// main runs the e2e scenario: 001_item_lifecycle
//
// The scenario expects a freshly started server (empty store) and drives the item API
// over real HTTP.
//
// What it tests:
//   - Concurrent POST /api/items requests get unique, strictly increasing ids
//   - GET /api/items lists every item in ascending id order
//   - PUT /api/items/{id} renames an item and stamps updated_at
//   - DELETE /api/items/{id} removes an item; a following GET answers 404
//   - Ids are never reused after a delete
//   - GET /metrics labels item requests by path template, not by concrete id
//
// Expected results:
//   - totalItems items created with ids 1..totalItems
//   - One item renamed, one item deleted, one more item created with id totalItems+1
//   - The scrape contains app_info and path="/api/items/{id}" and no concrete item paths
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:5000" // Base URL of the devops-api server
	totalItems := 200                  // Number of items created concurrently
	parallel := 8                      // Number of concurrent create requests
	traceID := "e2e-item-lifecycle"    // X-Trace-ID sent on every request

	fmt.Println("Starting e2e scenario: 001_item_lifecycle")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("TOTAL_ITEMS: %d\n", totalItems)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TRACE_ID: %s\n", traceID)
	fmt.Println()

	// 1) health
	status, body, err := send(baseURL, http.MethodGet, "/health", traceID, nil)
	mustStatus("GET /health", status, http.StatusOK, body, err)

	// 2) concurrent creates
	fmt.Printf("Creating %d items...\n", totalItems)
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var createdRequest int64
	ids := make([]int64, 0, totalItems)

	for i := 1; i <= totalItems; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(n int) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			payload := fmt.Sprintf(`{"name":"item-%04d","description":"created by e2e"}`, n)
			status, body, err := send(baseURL, http.MethodPost, "/api/items", traceID, []byte(payload))
			if err == nil && status != http.StatusCreated {
				err = fmt.Errorf("HTTP %d: %s", status, body)
			}
			var created item
			if err == nil {
				err = json.Unmarshal(body, &created)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errors = append(errors, fmt.Errorf("item %d: %w", n, err))
				return
			}
			atomic.AddInt64(&createdRequest, 1)
			ids = append(ids, created.ID)
		}(i)
	}
	wg.Wait()

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %d creates failed\n", len(errors))
		os.Exit(1)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		if id != int64(i+1) {
			fail("expected ids 1..%d, got %d at position %d", totalItems, id, i)
		}
	}
	fmt.Printf("Created %d items with unique ids\n", atomic.LoadInt64(&createdRequest))

	// 3) list order
	status, body, err = send(baseURL, http.MethodGet, "/api/items", traceID, nil)
	mustStatus("GET /api/items", status, http.StatusOK, body, err)
	var list itemList
	if err := json.Unmarshal(body, &list); err != nil {
		fail("decode list: %v", err)
	}
	if list.Count != totalItems || len(list.Items) != totalItems {
		fail("expected %d items, got count=%d len=%d", totalItems, list.Count, len(list.Items))
	}
	for i := 1; i < len(list.Items); i++ {
		if list.Items[i-1].ID >= list.Items[i].ID {
			fail("list not in ascending id order at position %d", i)
		}
	}

	// 4) update
	status, body, err = send(baseURL, http.MethodPut, "/api/items/1", traceID, []byte(`{"name":"Updated"}`))
	mustStatus("PUT /api/items/1", status, http.StatusOK, body, err)
	var updated item
	if err := json.Unmarshal(body, &updated); err != nil {
		fail("decode update: %v", err)
	}
	if updated.Name != "Updated" || updated.UpdatedAt == nil {
		fail("unexpected update result: %s", body)
	}

	// 5) delete the last item, then make sure its id is not handed out again
	last := fmt.Sprintf("/api/items/%d", totalItems)
	status, body, err = send(baseURL, http.MethodDelete, last, traceID, nil)
	mustStatus("DELETE "+last, status, http.StatusOK, body, err)
	status, body, err = send(baseURL, http.MethodGet, last, traceID, nil)
	mustStatus("GET "+last+" after delete", status, http.StatusNotFound, body, err)

	status, body, err = send(baseURL, http.MethodPost, "/api/items", traceID, []byte(`{"name":"after-delete"}`))
	mustStatus("POST /api/items after delete", status, http.StatusCreated, body, err)
	var next item
	if err := json.Unmarshal(body, &next); err != nil {
		fail("decode create: %v", err)
	}
	if next.ID != int64(totalItems+1) {
		fail("expected id %d after delete, got %d", totalItems+1, next.ID)
	}

	// 6) metrics
	status, body, err = send(baseURL, http.MethodGet, "/metrics", traceID, nil)
	mustStatus("GET /metrics", status, http.StatusOK, body, err)
	checkMetrics(body)

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Created request: %d\n", atomic.LoadInt64(&createdRequest)+1)
	fmt.Printf("Items listed: %d\n", list.Count)
	fmt.Println("Scenario completed successfully")
}

func checkMetrics(scrape []byte) {
	var sawAppInfo, sawTemplate bool
	scanner := bufio.NewScanner(bytes.NewReader(scrape))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, `app_info{version=`) {
			sawAppInfo = true
		}
		if strings.Contains(line, `path="/api/items/{id}"`) {
			sawTemplate = true
		}
		if strings.Contains(line, `path="/api/items/1"`) {
			fail("metrics labeled by concrete id: %s", line)
		}
	}
	if !sawAppInfo {
		fail("app_info gauge missing from scrape")
	}
	if !sawTemplate {
		fail(`path="/api/items/{id}" missing from scrape`)
	}
}

func send(baseURL, method, path, traceID string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Trace-ID", traceID)

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func mustStatus(step string, got, want int, body []byte, err error) {
	if err != nil {
		fail("%s: %v", step, err)
	}
	if got != want {
		fail("%s: expected status %d, got %d: %s", step, want, got, body)
	}
	fmt.Printf("%s -> %d\n", step, got)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
