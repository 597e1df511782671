package daemon

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/calc/pkg/events"
)

const sseKeepAlive = 30 * time.Second

// streamEvents serves the event hub as text/event-stream until the client
// goes away.
func streamEvents(c *gin.Context) {
	if !conf.PublishEvents() {
		c.IndentedJSON(http.StatusServiceUnavailable, "event publishing is disabled")
		return
	}

	ch := sseHub.Subscribe()
	defer sseHub.Unsubscribe(ch)

	logrus.WithField("subscribers", sseHub.Len()).Debug("event subscriber connected")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Send the current state first so a new subscriber does not wait for
	// the next key press.
	c.SSEvent(events.StateChanged, snapshotEvent())
	c.Writer.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-ticker.C:
			_, _ = io.WriteString(w, ": keep-alive\n\n")
			return true
		}
	})

	logrus.Debug("event subscriber disconnected")
}

func snapshotEvent() events.StateChangedEvent {
	s := session.Snapshot()
	return events.StateChangedEvent{
		Display:       s.Display,
		ClearLabel:    string(s.ClearLabel),
		ArmedOperator: s.ArmedOperator.String(),
		Error:         s.Error,
		Ts:            time.Now().Unix(),
	}
}
