package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schoolpay/schoolpay-gobackend/internal/config"
)

// GatewayClient talks to the external payment gateway. It signs the collect
// request payload with the gateway key before submitting it.
type GatewayClient struct {
	baseURI     string
	signingKey  []byte
	apiKey      string
	callbackURL string
	httpClient  *http.Client
}

func NewGatewayClient(cfg config.Gateway) *GatewayClient {
	return &GatewayClient{
		baseURI:     cfg.BaseURI,
		signingKey:  []byte(cfg.SigningKey),
		apiKey:      cfg.APIKey,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type collectRequestBody struct {
	SchoolID    string  `json:"school_id"`
	Amount      float64 `json:"amount"`
	CallbackURL string  `json:"callback_url"`
	Sign        string  `json:"sign"`
}

// CreateCollectRequest asks the gateway for a payment page link. The returned
// URL is empty, with a nil error, when the gateway answers successfully but
// does not include a link. Calls are not retried and carry no idempotency
// token; duplicate requests create duplicate collect requests upstream.
func (c *GatewayClient) CreateCollectRequest(ctx context.Context, schoolID string, amount float64) (string, error) {
	claims := jwt.MapClaims{
		"school_id":    schoolID,
		"amount":       amount,
		"callback_url": c.callbackURL,
	}
	sign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		return "", err
	}

	body := collectRequestBody{
		SchoolID:    schoolID,
		Amount:      amount,
		CallbackURL: c.callbackURL,
		Sign:        sign,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURI+"/erp/create-collect-request", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return "", errors.New("gateway error: " + resp.Status + ": " + string(respBody))
	}

	var result struct {
		CollectRequestURL string `json:"collect_request_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.CollectRequestURL, nil
}
