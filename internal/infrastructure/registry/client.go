package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"github.com/verkoop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	loginPath     = "/api/public/login"
	customersPath = "/api/admin/customers"
)

// Client talks to the central customer registry over HTTP. Authentication is
// best-effort: a registry without the login endpoint, or one that answers
// without a token, is still served unauthenticated. Only an explicit
// credential rejection is fatal.
type Client struct {
	baseURL     string
	credentials config.RegistryConfig
	httpClient  *http.Client
	loginClient *http.Client
	logger      *zap.Logger
}

// NewClient creates a registry client from configuration.
func NewClient(cfg config.RegistryConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		credentials: cfg,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		loginClient: &http.Client{
			Timeout: cfg.LoginTimeout,
		},
		logger: logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type rawAddress struct {
	Street       string `json:"street"`
	ExtNumber    string `json:"ext_number"`
	IntNumber    string `json:"int_number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type rawCustomer struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PhoneNumber  string     `json:"phone_number"`
	Phone        string     `json:"phone"`
	Gsm          string     `json:"gsm"`
	CustomerType string     `json:"customer_type"`
	Description  string     `json:"description"`
	CompanyName  string     `json:"company_name"`
	TaxID        string     `json:"tax_id"`
	Address      rawAddress `json:"address"`
	IsActive     *bool      `json:"is_active"`
	SellerCode   string     `json:"seller_code"`
}

// FetchCustomers authenticates when credentials are configured and returns
// the full registry listing as domain records.
func (c *Client) FetchCustomers(ctx context.Context) ([]crm.CustomerRecord, error) {
	token, err := c.login(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+customersPath, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, shared.ErrUpstreamRejected
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: customer listing returned status %d", shared.ErrUpstreamProtocol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}

	raws, err := decodeListing(body)
	if err != nil {
		return nil, err
	}

	records := make([]crm.CustomerRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, raw.toRecord())
	}
	return records, nil
}

// login performs the optional bootstrap call. It returns an empty token for
// every soft failure and errors only on an explicit rejection.
func (c *Client) login(ctx context.Context) (string, error) {
	if !c.credentials.HasCredentials() {
		return "", nil
	}

	payload, err := json.Marshal(loginRequest{
		Email:    c.credentials.AdminEmail,
		Password: c.credentials.AdminPassword,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.loginClient.Do(req)
	if err != nil {
		c.logger.Warn("registry login unreachable, proceeding unauthenticated", zap.Error(err))
		return "", nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var lr loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil || lr.AccessToken == "" {
			c.logger.Warn("registry login returned no access token, proceeding unauthenticated")
			return "", nil
		}
		return lr.AccessToken, nil
	case http.StatusNotFound:
		c.logger.Warn("registry login endpoint not found, proceeding unauthenticated")
		return "", nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", shared.ErrUpstreamRejected
	default:
		c.logger.Warn("registry login returned unexpected status, proceeding unauthenticated",
			zap.Int("status", resp.StatusCode))
		return "", nil
	}
}

// decodeListing accepts either an {items: [...]} envelope or a bare array.
func decodeListing(body []byte) ([]rawCustomer, error) {
	var envelope struct {
		Items []rawCustomer `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var bare []rawCustomer
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("%w: customer listing has an unexpected shape", shared.ErrUpstreamProtocol)
}

func (r rawCustomer) toRecord() crm.CustomerRecord {
	phone := r.PhoneNumber
	if phone == "" {
		phone = r.Phone
	}
	if phone == "" {
		phone = r.Gsm
	}

	return crm.CustomerRecord{
		ExternalID:   strings.TrimSpace(r.ID),
		Email:        strings.TrimSpace(r.Email),
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PhoneNumber:  phone,
		CustomerType: r.CustomerType,
		Description:  r.Description,
		CompanyName:  r.CompanyName,
		TaxID:        r.TaxID,
		Address: crm.AddressRecord{
			Street:       r.Address.Street,
			ExtNumber:    r.Address.ExtNumber,
			IntNumber:    r.Address.IntNumber,
			Neighborhood: r.Address.Neighborhood,
			City:         r.Address.City,
			State:        r.Address.State,
			PostalCode:   r.Address.PostalCode,
			Country:      r.Address.Country,
		},
		IsActive:   r.IsActive,
		SellerCode: r.SellerCode,
	}
}

// Ensure Client implements RegistryClient
var _ crm.RegistryClient = (*Client)(nil)
