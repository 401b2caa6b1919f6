package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DNIResponse is returned by the Decolecta DNI endpoint for natural persons.
type DNIResponse struct {
	FullName       string `json:"full_name"`
	FirstName      string `json:"first_name"`
	FirstLastName  string `json:"first_last_name"`
	SecondLastName string `json:"second_last_name"`
}

// RUCResponse is returned by the Decolecta RUC endpoint for legal entities.
type RUCResponse struct {
	RazonSocial string `json:"razon_social"`
	FullName    string `json:"full_name"`
}

// DecolectaClient resolves identity documents to names via the Decolecta API.
// Every call carries the client-level timeout: a hung lookup must surface as
// an error instead of blocking a request indefinitely.
type DecolectaClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewDecolectaClient(baseURL, token string, timeout time.Duration) *DecolectaClient {
	return &DecolectaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ConsultarDNI looks up a natural person's name by DNI.
func (c *DecolectaClient) ConsultarDNI(ctx context.Context, dni string) (*DNIResponse, error) {
	var result DNIResponse
	if err := c.get(ctx, "/dni/"+dni, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ConsultarRUC looks up a legal entity's name by RUC.
func (c *DecolectaClient) ConsultarRUC(ctx context.Context, ruc string) (*RUCResponse, error) {
	var result RUCResponse
	if err := c.get(ctx, "/ruc/"+ruc, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *DecolectaClient) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("decolecta: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("decolecta: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("decolecta: returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decolecta: decode response: %w", err)
	}
	return nil
}
