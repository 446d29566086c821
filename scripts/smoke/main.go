// Command smoke probes a running showcase API instance and reports
// endpoint health. Intended for post-deploy checks; exits non-zero
// when a critical endpoint fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	WantStatus int    `json:"want_status"`
	Critical   bool   `json:"critical"`
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/health", WantStatus: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/ready", WantStatus: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/metrics", WantStatus: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/feed", WantStatus: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/posts?status=approved", WantStatus: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/leaderboards", WantStatus: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/v1/leaderboards/export?format=csv", WantStatus: http.StatusOK, Critical: false},
	{Method: http.MethodGet, Path: "/api/v1/users/pixel_pioneer", WantStatus: http.StatusOK, Critical: false},
}

func main() {
	var (
		base        string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&targetsPath, "targets", "", "optional JSON targets file overriding the built-in list")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load targets: %v\n", err)
			os.Exit(1)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	var failures int

	fmt.Println("Smoke Report")
	fmt.Println("============")
	for _, tgt := range targets {
		res := probe(client, base, tgt)
		label := "OK"
		if res.Error != nil || res.Status != tgt.WantStatus {
			label = "FAIL"
			if tgt.Critical {
				failures++
			}
		}
		fmt.Printf("[%s] %s %s\n", label, tgt.Method, tgt.Path)
		if res.Error != nil {
			fmt.Printf("  error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  status: %d (want %d) in %s\n", res.Status, tgt.WantStatus, res.Duration)
	}

	fmt.Printf("Critical failures: %d\n", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func probe(client *http.Client, base string, tgt target) result {
	res := result{Target: tgt}

	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		res.Error = err
		return res
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	res.Status = resp.StatusCode
	return res
}
