package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"calbooking/internal/availability"
	"calbooking/internal/domain"
)

// maxFreeBusyBody caps how much of a free/busy response is read.
const maxFreeBusyBody = 1 << 20

// freeBusyKey is the stored key of an http_freebusy credential.
type freeBusyKey struct {
	URL   string `json:"url"`
	Token string `json:"token,omitempty"`
}

type freeBusyRequest struct {
	TimeMin time.Time `json:"timeMin"`
	TimeMax time.Time `json:"timeMax"`
}

type freeBusyResponse struct {
	Busy []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"busy"`
}

type freeBusyProvider struct {
	client *http.Client
}

// NewFreeBusyProvider returns a provider that POSTs the requested window to the credential's URL
// and reads back {"busy":[{"start","end"}]}.
func NewFreeBusyProvider(client *http.Client) domain.BusyTimeProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &freeBusyProvider{client: client}
}

func parseFreeBusyKey(raw json.RawMessage) (freeBusyKey, error) {
	var key freeBusyKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return key, fmt.Errorf("decode key: %w", err)
	}
	u, err := url.Parse(strings.TrimSpace(key.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return key, fmt.Errorf("key url must be an absolute http(s) url")
	}
	key.URL = u.String()
	return key, nil
}

func (p *freeBusyProvider) BusyTimes(ctx context.Context, cred *domain.Credential, from, to time.Time) ([]availability.TimeRange, error) {
	key, err := parseFreeBusyKey(cred.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCredentialRejected, err)
	}
	body, err := json.Marshal(freeBusyRequest{TimeMin: from.UTC(), TimeMax: to.UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, key.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if key.Token != "" {
		req.Header.Set("Authorization", "Bearer "+key.Token)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch free/busy: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: free/busy returned status %d", domain.ErrCredentialRejected, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("free/busy returned status: %d", resp.StatusCode)
	}

	var data freeBusyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFreeBusyBody)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode free/busy response: %w", err)
	}
	out := make([]availability.TimeRange, 0, len(data.Busy))
	for _, b := range data.Busy {
		r, err := availability.NewTimeRange(b.Start.UTC(), b.End.UTC())
		if err != nil {
			// empty or inverted entries carry no busy time
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
