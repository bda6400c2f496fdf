package loaders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spaghettifunk/facecube/engine/resources"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

const (
	experiencePath    = "/api/experience"
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 4 << 10
)

// HTTPLoader fetches experience records from the portfolio data service.
// The path handed to Load is the service base URL.
type HTTPLoader struct {
	Client  *http.Client
	Timeout time.Duration
}

func (hl *HTTPLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	timeout := hl.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	list, err := hl.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Type:     resources.ResourceTypeRemote,
		Name:     "experience",
		FullPath: ExperienceURL(path),
		Data:     list,
	}, nil
}

func (hl *HTTPLoader) Unload(*resources.Resource) error {
	return nil
}

// ExperienceURL joins the service base URL with the experience listing route.
func ExperienceURL(base string) string {
	return strings.TrimRight(base, "/") + experiencePath
}

// Fetch issues GET {base}/api/experience and decodes the JSON array it returns.
func (hl *HTTPLoader) Fetch(ctx context.Context, base string) ([]resources.Experience, error) {
	client := hl.Client
	if client == nil {
		client = http.DefaultClient
	}

	url := ExperienceURL(base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: %s (status code = %d): %s", ErrUnexpectedStatus, url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var list []resources.Experience
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	resources.SortExperiences(list)
	return list, nil
}
