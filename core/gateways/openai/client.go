// Package openai connects the reconciliation engine to the OpenAI
// realtime channel: one websocket carrying both the speech model's and
// the transcription model's events, plus the REST endpoint that mints
// ephemeral session secrets.
package openai

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/voicelink-ai/voicelink-core/core/events"
)

const (
	// DefaultModel is the speech response model dialed when no override
	// is configured.
	DefaultModel = "gpt-4o-mini-realtime-preview"

	defaultRealtimeURL = "wss://api.openai.com/v1/realtime"
)

// Client is a realtime channel client. It satisfies the engine's
// Gateway contract: Send is fire-and-forget with writes serialized by
// a mutex, and received frames are handed to the configured callback
// strictly in arrival order.
type Client struct {
	conn   *websocket.Conn
	connMu sync.Mutex

	options clientOptions
}

type clientOptions struct {
	apiKey  string
	model   string
	baseURL string

	onServerEvent func(event events.ServerEvent)
}

type ClientOption func(*clientOptions)

// WithAPIKey overrides the OPENAI_API_KEY environment lookup.
func WithAPIKey(apiKey string) ClientOption {
	return func(o *clientOptions) { o.apiKey = apiKey }
}

// WithModel selects the speech response model for the channel.
func WithModel(model string) ClientOption {
	return func(o *clientOptions) { o.model = model }
}

// WithBaseURL overrides the realtime endpoint, e.g. for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithServerEventCallback registers the consumer of inbound events.
// The callback runs inline on the read loop; arrival order is the
// ordering contract downstream reconciliation depends on.
func WithServerEventCallback(callback func(event events.ServerEvent)) ClientOption {
	return func(o *clientOptions) { o.onServerEvent = callback }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		options: clientOptions{
			model:   DefaultModel,
			baseURL: defaultRealtimeURL,
		},
	}
	for _, opt := range opts {
		opt(&c.options)
	}
	return c
}

// Connect dials the realtime channel and starts the read loop. The
// connection is dropped, not reconnected, when the loop exits; retry
// policy belongs to the caller.
func (c *Client) Connect(ctx context.Context) error {
	apiKey := c.options.apiKey
	if apiKey == "" {
		var ok bool
		if apiKey, ok = os.LookupEnv("OPENAI_API_KEY"); !ok || apiKey == "" {
			return fmt.Errorf("openai api key not found")
		}
	}

	endpoint, err := url.Parse(c.options.baseURL)
	if err != nil {
		return fmt.Errorf("invalid realtime url: %w", err)
	}
	query := endpoint.Query()
	query.Set("model", c.options.model)
	endpoint.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), http.Header{
		"Authorization": {"Bearer " + apiKey},
		"OpenAI-Beta":   {"realtime=v1"},
	})
	if err != nil {
		return fmt.Errorf("failed to open socket connection to openai: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	go c.readAndProcessMessages(ctx, conn)

	return nil
}

// Send writes one client event to the channel.
func (c *Client) Send(event events.ClientEvent) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("connection closed")
	}
	if err := c.conn.WriteJSON(event); err != nil {
		return fmt.Errorf("failed to write to realtime channel: %w", err)
	}
	return nil
}

// Close sends a normal closure frame and drops the connection.
func (c *Client) Close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return nil
	}

	writeErr := c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	closeErr := c.conn.Close()
	c.conn = nil

	if writeErr != nil {
		return fmt.Errorf("failed to close realtime channel: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close websocket: %w", closeErr)
	}
	return nil
}

func (c *Client) readAndProcessMessages(ctx context.Context, conn *websocket.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Websocket read error: %v", err)
			}

			c.connMu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.connMu.Unlock()
			conn.Close()
			return
		}

		event, err := events.ParseServer(msg)
		if err != nil {
			logger.WarnContext(ctx, "skipping unparseable realtime event", "error", err)
			continue
		}

		if c.options.onServerEvent != nil {
			c.options.onServerEvent(event)
		}
	}
}
