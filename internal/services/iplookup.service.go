package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rcsc-server/config"
	"rcsc-server/internal/logger"
)

// IPLocation is one resolved submission address.
type IPLocation struct {
	IP          string `json:"ip"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

type batchRequest struct {
	Query  string `json:"query"`
	Fields string `json:"fields"`
}

type batchResponse struct {
	Status      string `json:"status"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	RegionName  string `json:"regionName"`
	City        string `json:"city"`
	Query       string `json:"query"`
	Message     string `json:"message"`
}

// IPLookupService resolves submission IPs to coarse geolocation via the
// ip-api.com batch endpoint. Results are a moderator-facing signal only.
type IPLookupService struct {
	url    string
	client *http.Client
	log    logger.Logger
}

func NewIPLookupService(config config.Config) *IPLookupService {
	return &IPLookupService{
		url:    config.IPLookupURL,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.New("IPLookupService"),
	}
}

// LookupBatch resolves the given addresses, deduplicated, skipping the
// "Unknown" sentinel and any address the provider cannot place.
func (s *IPLookupService) LookupBatch(ctx context.Context, ips []string) ([]IPLocation, error) {
	log := s.log.Function("LookupBatch")

	seen := map[string]struct{}{}
	payload := make([]batchRequest, 0, len(ips))
	for _, ip := range ips {
		if ip == "" || ip == "Unknown" {
			continue
		}
		if _, dup := seen[ip]; dup {
			continue
		}
		seen[ip] = struct{}{}
		payload = append(payload, batchRequest{
			Query:  ip,
			Fields: "status,country,countryCode,regionName,city,query",
		})
	}

	if len(payload) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, log.Err("failed to marshal lookup payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, log.Err("failed to build lookup request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, log.Err("batch IP lookup failed", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, log.Error("batch IP lookup failed", "status", res.StatusCode)
	}

	var results []batchResponse
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, log.Err("failed to decode lookup response", err)
	}

	locations := make([]IPLocation, 0, len(results))
	for _, r := range results {
		if r.Status != "success" {
			continue
		}
		locations = append(locations, IPLocation{
			IP:          r.Query,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			City:        r.City,
			Region:      r.RegionName,
		})
	}

	return locations, nil
}
