package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

const baseURL = "http://localhost:8080"

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Manual end-to-end check against a running server and generation backend.
func main() {
	fmt.Println("Starting chat test...")

	if err := checkHealth(); err != nil {
		log.Fatalf("Health check failed: %v", err)
	}
	fmt.Println("Health check passed")

	sessionID := ""
	for _, message := range []string{
		"Hello! What can you help me with?",
		"Can you summarize what I just asked you?",
	} {
		resp, err := sendChat(message, sessionID)
		if err != nil {
			log.Fatalf("Chat request failed: %v", err)
		}
		sessionID = resp.SessionID
		fmt.Printf("session %s\n  > %s\n  < %s\n", resp.SessionID, message, resp.Response)
	}

	fmt.Println("Chat test completed successfully!")
}

func checkHealth() error {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

func sendChat(message, sessionID string) (*ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Error)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, err
	}
	return &chatResp, nil
}
