package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"
)

// AdminClient is the REST-backed Store implementation a dashboard
// session uses against the server's admin surface.
type AdminClient struct {
	baseURL string
	client  *http.Client
	cookie  string
	log     logger.Logger
}

func NewAdminClient(baseURL, sessionCookie string) *AdminClient {
	return &AdminClient{
		baseURL: baseURL,
		client:  http.DefaultClient,
		cookie:  sessionCookie,
		log:     logger.New("roster").File("client"),
	}
}

func (c *AdminClient) FetchAll(ctx context.Context) ([]Registration, error) {
	log := c.log.Function("FetchAll")

	var response struct {
		Registrations []Registration `json:"registrations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/registrations", nil, &response); err != nil {
		return nil, log.Err("failed to fetch registrations", err)
	}

	return response.Registrations, nil
}

func (c *AdminClient) Update(ctx context.Context, id int, update RegistrationUpdate) (*Registration, error) {
	log := c.log.Function("Update")

	var response struct {
		Registration *Registration `json:"registration"`
	}
	path := fmt.Sprintf("/api/admin/registrations/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, update, &response); err != nil {
		return nil, log.Err("failed to update registration", err, "id", id)
	}

	return response.Registration, nil
}

func (c *AdminClient) Delete(ctx context.Context, id int) error {
	log := c.log.Function("Delete")

	path := fmt.Sprintf("/api/admin/registrations/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return log.Err("failed to delete registration", err, "id", id)
	}

	return nil
}

func (c *AdminClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&failure)
		if failure.Message != "" {
			return fmt.Errorf("server responded %d: %s", res.StatusCode, failure.Message)
		}
		return fmt.Errorf("server responded %d", res.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}

	return nil
}
