package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/meera/rfmscope/backend/internal/config"
	"github.com/meera/rfmscope/backend/internal/logging"
)

func main() {
	var (
		filePath  = flag.String("file", "", "Path to the CSV or Excel dataset to upload")
		serverURL = flag.String("server", "http://localhost:8080", "Base URL of the analytics API")
		timeout   = flag.Duration("timeout", 2*time.Minute, "Upload request timeout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	if *filePath == "" {
		logger.Error("missing required -file flag")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	result, err := uploadDataset(ctx, *serverURL, *filePath, *timeout)
	if err != nil {
		logger.Error("upload failed", "error", err, "file", *filePath)
		os.Exit(1)
	}

	logger.Info("upload complete",
		"file", *filePath,
		"rows", result.Rows,
		"customers", result.Customers,
		"rejected_rows", result.RejectedRows,
		"duration", time.Since(start).String(),
	)
}

type uploadResult struct {
	Message      string `json:"message"`
	Rows         int    `json:"rows"`
	Customers    int    `json:"customers"`
	RejectedRows int    `json:"rejected_rows"`
	Filename     string `json:"filename"`
}

func uploadDataset(ctx context.Context, serverURL, filePath string, timeout time.Duration) (uploadResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return uploadResult{}, fmt.Errorf("read %s: %w", filePath, err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return uploadResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return uploadResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return uploadResult{}, fmt.Errorf("build multipart body: %w", err)
	}

	url := strings.TrimRight(serverURL, "/") + "/api/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return uploadResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return uploadResult{}, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return uploadResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Error != "" {
			return uploadResult{}, fmt.Errorf("server rejected upload (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return uploadResult{}, fmt.Errorf("server rejected upload: status %d", resp.StatusCode)
	}

	var result uploadResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return uploadResult{}, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}
