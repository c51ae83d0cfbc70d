package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"otpctl/pkg/config"
)

type serverInfoResponse struct {
	Data struct {
		ServerInfo struct {
			Version                      string `json:"version"`
			GitCommit                    string `json:"gitCommit"`
			InternalTransitModelTimeZone string `json:"internalTransitModelTimeZone"`
		} `json:"serverInfo"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	url := settings.Endpoint()

	fmt.Println("Probing OTP GraphQL endpoint at", url)

	body, _ := json.Marshal(map[string]string{
		"query": "{ serverInfo { version gitCommit internalTransitModelTimeZone } }",
	})
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	fmt.Println("Status:", resp.Status)

	var res serverInfoResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		fmt.Println("Error decoding JSON:", err)
		fmt.Println(string(raw))
		return
	}

	for _, e := range res.Errors {
		fmt.Println("GraphQL error:", e.Message)
	}

	info := res.Data.ServerInfo
	fmt.Println("\n--- 🛰️ Server Info ---")
	fmt.Printf("Version: %s (%s)\nTime zone: %s\n", info.Version, info.GitCommit, info.InternalTransitModelTimeZone)
}
