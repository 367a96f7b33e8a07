package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func runHealth(apiURL string, out io.Writer) error {
	resp, err := http.Get(apiURL + "/api/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

func postWithSession(apiURL, path, sid string, payload map[string]interface{}, out io.Writer) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

func runChat(apiURL, sid, message string, weekOffset int, out io.Writer) error {
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return postWithSession(apiURL, "/api/ai/chat", sid, map[string]interface{}{
		"message":    message,
		"weekOffset": weekOffset,
	}, out)
}

func runTopTasks(apiURL, sid, scope string, weekOffset int, out io.Writer) error {
	return postWithSession(apiURL, "/api/ai/top-tasks", sid, map[string]interface{}{
		"scope":      scope,
		"weekOffset": weekOffset,
	}, out)
}
