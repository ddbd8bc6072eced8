package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

// Storefront is the HTTP client the CLI uses against the server's REST API.
type Storefront struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logrus.Logger
}

type envelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

func NewStorefront(baseURL string, timeout time.Duration, logger *logrus.Logger) *Storefront {
	return &Storefront{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *Storefront) SetToken(token string) {
	c.token = token
}

func (c *Storefront) ListProducts() ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get("/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Storefront) GetProduct(idOrSlug string) (*domain.Product, error) {
	var product domain.Product
	if err := c.get("/api/products/"+idOrSlug, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Storefront) CreateOrder(req *domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.post("/api/orders", req, http.StatusCreated, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Storefront) Login(email, password string) (*domain.AuthResponse, error) {
	payload := domain.LoginRequest{Email: email, Password: password}
	var authResp domain.AuthResponse
	if err := c.post("/api/auth/login", payload, http.StatusOK, &authResp); err != nil {
		return nil, err
	}
	c.token = authResp.Token
	return &authResp, nil
}

func (c *Storefront) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, http.StatusOK, out)
}

func (c *Storefront) post(path string, payload interface{}, wantStatus int, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize request payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, wantStatus, out)
}

func (c *Storefront) do(req *http.Request, wantStatus int, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debugf("StorefrontClient: %s %s", req.Method, req.URL)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("StorefrontClient: Failed to execute %s %s: %v", req.Method, req.URL, err)
		return fmt.Errorf("failed to communicate with storefront server: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Errorf("StorefrontClient: Failed to decode response from %s: %v", req.URL, err)
		return fmt.Errorf("failed to decode server response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		c.log.Warnf("StorefrontClient: %s %s returned status %d: %s", req.Method, req.URL, resp.StatusCode, env.Message)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
