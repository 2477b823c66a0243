package pumpportal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one message from the real-time data feed. The feed mixes token
// creation and trade events on a single channel; Raw keeps the full payload.
type Event struct {
	Mint      string  `json:"mint"`
	TxType    string  `json:"txType"`
	Name      string  `json:"name,omitempty"`
	Symbol    string  `json:"symbol,omitempty"`
	SolAmount float64 `json:"solAmount,omitempty"`
	Pool      string  `json:"pool,omitempty"`
	Raw       json.RawMessage
}

// Stream reads the PumpPortal real-time WebSocket feed.
type Stream struct {
	dataURL string
	conn    *websocket.Conn
}

// NewStream creates a Stream for the given wss endpoint.
func NewStream(dataURL string) *Stream {
	return &Stream{dataURL: dataURL}
}

// Connect dials the feed.
func (s *Stream) Connect(ctx context.Context) error {
	dialer := websocket.DefaultDialer
	conn, _, err := dialer.DialContext(ctx, s.dataURL, nil)
	if err != nil {
		return fmt.Errorf("dial data feed %s: %w", s.dataURL, err)
	}
	s.conn = conn
	return nil
}

// SubscribeNewTokens asks the feed for token creation events.
func (s *Stream) SubscribeNewTokens() error {
	return s.send(map[string]any{"method": "subscribeNewToken"})
}

// SubscribeTokenTrades asks the feed for trade events on the given mints.
func (s *Stream) SubscribeTokenTrades(mints []string) error {
	return s.send(map[string]any{"method": "subscribeTokenTrade", "keys": mints})
}

func (s *Stream) send(msg map[string]any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Run reads events until ctx is done or the connection fails, calling fn for
// each decoded event. Undecodable frames are logged and skipped.
func (s *Stream) Run(ctx context.Context, fn func(Event)) error {
	defer s.Close()

	go func() {
		<-ctx.Done()
		// Unblocks the pending ReadMessage.
		_ = s.conn.SetReadDeadline(time.Now())
		_ = s.conn.Close()
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read data feed: %w", err)
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("data feed: skipping undecodable frame", "err", err)
			continue
		}
		ev.Raw = json.RawMessage(data)
		fn(ev)
	}
}

// Close closes the underlying connection if it exists.
func (s *Stream) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
