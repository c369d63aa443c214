package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func runSearch(apiURL, query, category, minPrice, maxPrice string, out io.Writer) error {
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	params := url.Values{"q": {query}}
	if category != "" {
		params.Set("category", category)
	}
	if minPrice != "" {
		params.Set("minPrice", minPrice)
	}
	if maxPrice != "" {
		params.Set("maxPrice", maxPrice)
	}
	return getJSON(apiURL+"/api/search?"+params.Encode(), out)
}

func runSuggest(apiURL, prefix string, out io.Writer) error {
	params := url.Values{"q": {prefix}}
	return getJSON(apiURL+"/api/search/suggestions?"+params.Encode(), out)
}

func runChat(apiURL, message string, out io.Writer) error {
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	body, _ := json.Marshal(map[string]string{"message": message})
	resp, err := http.Post(apiURL+"/api/assistant/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	var reply struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, reply.Reply)
	return err
}

func runRefreshContext(apiURL string, out io.Writer) error {
	resp, err := http.Post(apiURL+"/api/assistant/context/refresh", "application/json", nil)
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

func runHealth(apiURL string, out io.Writer) error {
	for _, path := range []string{"/api/health", "/api/health/db"} {
		resp, err := http.Get(apiURL + path)
		if err != nil {
			return err
		}
		data, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		fmt.Fprintf(out, "%s %d %s", path, resp.StatusCode, string(data))
	}
	return nil
}

func getJSON(fullURL string, out io.Writer) error {
	resp, err := http.Get(fullURL)
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
