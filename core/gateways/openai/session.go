package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultSessionsURL = "https://api.openai.com/v1/realtime/sessions"

// ClientSecret is an ephemeral credential minted for a realtime
// session, safe to hand to an end-user client.
type ClientSecret struct {
	Value     string
	ExpiresAt int64
}

type sessionOptions struct {
	apiKey   string
	model    string
	endpoint string
}

type SessionOption func(*sessionOptions)

// WithSessionAPIKey overrides the OPENAI_API_KEY environment lookup.
func WithSessionAPIKey(apiKey string) SessionOption {
	return func(o *sessionOptions) { o.apiKey = apiKey }
}

// WithSessionModel selects the model the minted secret is bound to.
func WithSessionModel(model string) SessionOption {
	return func(o *sessionOptions) { o.model = model }
}

// WithSessionsEndpoint overrides the sessions endpoint, e.g. for tests.
func WithSessionsEndpoint(endpoint string) SessionOption {
	return func(o *sessionOptions) { o.endpoint = endpoint }
}

// MintClientSecret creates a realtime session server-side and returns
// its ephemeral client secret. The long-lived API key never leaves the
// caller's process.
func MintClientSecret(ctx context.Context, opts ...SessionOption) (*ClientSecret, error) {
	ctx, span := tracer.Start(ctx, "mint realtime client secret")
	defer span.End()

	options := sessionOptions{
		model:    DefaultModel,
		endpoint: defaultSessionsURL,
	}
	for _, opt := range opts {
		opt(&options)
	}

	apiKey := options.apiKey
	if apiKey == "" {
		var ok bool
		if apiKey, ok = os.LookupEnv("OPENAI_API_KEY"); !ok || apiKey == "" {
			err := fmt.Errorf("openai api key not found")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	body, err := json.Marshal(struct {
		Model string `json:"model"`
	}{Model: options.model})
	if err != nil {
		err = fmt.Errorf("failed to encode session request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, options.endpoint, bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed to create session request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	span.SetAttributes(
		attribute.String("request.url", req.URL.String()),
		attribute.String("request.model", options.model),
	)
	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
			return operationName + " " + request.URL.Path
		}),
	)}
	resp, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error sending session request: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(resp.Body)
		err = fmt.Errorf("session request failed (status %d): %s", resp.StatusCode, string(responseBody))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var session struct {
		ClientSecret struct {
			Value     string `json:"value"`
			ExpiresAt int64  `json:"expires_at"`
		} `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		err = fmt.Errorf("failed to decode session response: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &ClientSecret{
		Value:     session.ClientSecret.Value,
		ExpiresAt: session.ClientSecret.ExpiresAt,
	}, nil
}
