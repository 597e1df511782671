package client

import (
	"bufio"
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/calc/pkg/events"
)

// SubscribeEvents streams daemon events until ctx is cancelled or the
// connection drops. The returned channel is closed when the stream ends.
func (c *Client) SubscribeEvents(ctx context.Context) <-chan events.Event {
	out := make(chan events.Event, 16)

	go func() {
		defer close(out)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
		if err != nil {
			logrus.WithError(err).Error("failed to create event request")
			return
		}
		req.Header.Set("Accept", "text/event-stream")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() == nil {
				logrus.WithError(err).Error("failed to subscribe to events")
			}
			return
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			logrus.WithField("statusCode", resp.StatusCode).Error("daemon refused event subscription")
			return
		}

		readEvents(ctx, bufio.NewScanner(resp.Body), out)
	}()

	return out
}

// readEvents parses a text/event-stream body. Only the event and data
// fields are used; comments and unknown fields are skipped.
func readEvents(ctx context.Context, sc *bufio.Scanner, out chan<- events.Event) {
	var name string
	var data strings.Builder

	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				select {
				case out <- events.Event{Name: name, Data: []byte(data.String())}:
				case <-ctx.Done():
					return
				}
			}
			name = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}

	if err := sc.Err(); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Warn("event stream closed")
	}
}
