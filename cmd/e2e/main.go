package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const boardID = "e2e-board"

func baseURL() string {
	if u := os.Getenv("E2E_BASE_URL"); u != "" {
		return u
	}
	switch os.Getenv("ENV") {
	case "CI":
		return "http://core-app:8080/api/v1"
	}
	return "http://localhost:8080/api/v1"
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type manualTitle struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

type board struct {
	Tallies []struct {
		Title struct {
			ID string `json:"id"`
		} `json:"title"`
		Votes int `json:"votes"`
	} `json:"tallies"`
	Leader *string `json:"leader"`
}

func main() {
	fmt.Println("Starting E2E run against watchnext API...")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	if !waitForService(client) {
		os.Exit(1)
	}

	token, err := authenticate(client)
	if err != nil {
		fail("Authentication failed: %v", err)
	}
	fmt.Println("Authenticated successfully")

	for _, title := range []string{"Heat", "Arrival"} {
		if err := addToWatchlist(client, token, title); err != nil {
			fail("Add to watchlist failed: %v", err)
		}
	}
	fmt.Println("Watchlist filled")

	var b board
	if err := call(client, http.MethodPost, "/boards/"+boardID+"/load", token,
		map[string]bool{"from_watchlist": true}, http.StatusOK, &b); err != nil {
		fail("Load board failed: %v", err)
	}
	if len(b.Tallies) < 2 || b.Leader != nil {
		fail("Unexpected fresh board: %+v", b)
	}

	if err := call(client, http.MethodPost, "/boards/"+boardID+"/titles/Heat/upvote", token,
		nil, http.StatusOK, &b); err != nil {
		fail("Upvote failed: %v", err)
	}
	if b.Leader == nil || *b.Leader != "Heat" {
		fail("Expected Heat to lead, got %+v", b)
	}
	fmt.Println("Voting works")

	if err := call(client, http.MethodDelete, "/boards/"+boardID, token, nil, http.StatusNoContent, nil); err != nil {
		fail("Close board failed: %v", err)
	}

	fmt.Println("\n All E2E checks passed!")
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}

func waitForService(client *http.Client) bool {
	fmt.Println(" Waiting for service to be ready...")

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		resp, err := client.Get(baseURL() + "/watchlist")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusUnauthorized {
				fmt.Println(" Service is ready!")
				return true
			}
		}

		if i < maxRetries-1 {
			fmt.Printf(" Service not ready yet (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
		}
	}

	fmt.Println(" Service didn't start in time")
	return false
}

func authenticate(client *http.Client) (string, error) {
	creds := credentials{Email: "e2e@watchnext.local", Password: "e2e-password"}

	resp, err := send(client, http.MethodPost, "/auth/signup", "", creds)
	if err != nil {
		return "", err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return "", fmt.Errorf("signup returned status %d", resp.StatusCode)
	}

	resp, err = send(client, http.MethodPost, "/auth/login", "", creds)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login returned status %d: %s", resp.StatusCode, string(body))
	}

	token := resp.Header.Get("X-user-token")
	if token == "" {
		return "", fmt.Errorf("user token not found in response headers")
	}
	return token, nil
}

func addToWatchlist(client *http.Client, token, title string) error {
	resp, err := send(client, http.MethodPost, "/watchlist", token, manualTitle{Title: title, Kind: "movie"})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("add returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func call(client *http.Client, method, path, token string, body any, want int, out any) error {
	resp, err := send(client, method, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, string(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse response: %v", err)
		}
	}
	return nil
}

func send(client *http.Client, method, path, token string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request: %v", err)
		}
	}

	req, err := http.NewRequest(method, baseURL()+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-user-token", token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %v", method, path, err)
	}
	return resp, nil
}
