package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
	"github.com/charlie0129/calc/pkg/events"
	"github.com/charlie0129/calc/pkg/utils/ptr"
)

func newTestServer(t *testing.T, raw *config.RawFileConfig) *httptest.Server {
	t.Helper()
	setup(config.NewFileFromConfig(raw, ""))
	srv := httptest.NewServer(setupRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = bufio.NewReader(resp.Body).WriteTo(&sb)
	require.NoError(t, err)
	return resp.StatusCode, sb.String()
}

func decodeState(t *testing.T, body string) calc.State {
	t.Helper()
	var s calc.State
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	return s
}

func TestPressAndState(t *testing.T) {
	srv := newTestServer(t, nil)

	code, body := do(t, srv, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, code)
	s := decodeState(t, body)
	assert.Equal(t, "0", s.Display)
	assert.Equal(t, calc.ClearAll, s.ClearLabel)
	assert.Equal(t, calc.OpNone, s.ArmedOperator)

	code, body = do(t, srv, http.MethodPost, "/press", `["5", "+"]`)
	require.Equal(t, http.StatusOK, code)
	s = decodeState(t, body)
	assert.Equal(t, "5", s.Display)
	assert.Equal(t, calc.OpAdd, s.ArmedOperator)
	assert.Equal(t, calc.ClearEntry, s.ClearLabel)

	code, body = do(t, srv, http.MethodPost, "/press", `"3"`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "3", decodeState(t, body).Display)

	code, body = do(t, srv, http.MethodPost, "/press", `["equals"]`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "8", decodeState(t, body).Display)

	code, body = do(t, srv, http.MethodPut, "/clear", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0", decodeState(t, body).Display)
}

func TestPressRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, body := range []string{``, `[]`, `["sqrt"]`, `"log"`, `[1`} {
		code, _ := do(t, srv, http.MethodPost, "/press", body)
		assert.Equal(t, http.StatusBadRequest, code, "body %q", body)
	}

	// Nothing was applied.
	_, body := do(t, srv, http.MethodGet, "/state", "")
	assert.Equal(t, "0", decodeState(t, body).Display)
}

func TestErrorStateOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	_, body := do(t, srv, http.MethodPost, "/press", `["7", "/", "0", "="]`)
	s := decodeState(t, body)
	assert.Equal(t, calc.ErrorToken, s.Display)
	assert.True(t, s.Error)

	_, body = do(t, srv, http.MethodPost, "/press", `["5"]`)
	assert.Equal(t, calc.ErrorToken, decodeState(t, body).Display)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.errors))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.presses.WithLabelValues("7"))+
		testutil.ToFloat64(metrics.presses.WithLabelValues("divide"))+
		testutil.ToFloat64(metrics.presses.WithLabelValues("0"))+
		testutil.ToFloat64(metrics.presses.WithLabelValues("equals"))+
		testutil.ToFloat64(metrics.presses.WithLabelValues("5")))

	_, body = do(t, srv, http.MethodPut, "/clear", "")
	assert.False(t, decodeState(t, body).Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.resets))
}

func TestGetConfig(t *testing.T) {
	srv := newTestServer(t, &config.RawFileConfig{DivisionPrecision: ptr.To(3)})

	code, body := do(t, srv, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, code)

	var raw config.RawFileConfig
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	assert.Equal(t, 3, *raw.DivisionPrecision)
	assert.True(t, *raw.PublishEvents)

	_, body = do(t, srv, http.MethodPost, "/press", `["1", "/", "3", "="]`)
	assert.Equal(t, "0.333", decodeState(t, body).Display)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	do(t, srv, http.MethodPost, "/press", `["4"]`)

	code, body := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `calc_button_presses_total{button="4"} 1`)
	assert.Contains(t, body, "calc_display_length 1")
}

func TestVersion(t *testing.T) {
	srv := newTestServer(t, nil)
	code, body := do(t, srv, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.HasPrefix(body, `"`))
}

func TestEventsDisabled(t *testing.T) {
	srv := newTestServer(t, &config.RawFileConfig{PublishEvents: ptr.To(false)})
	code, _ := do(t, srv, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestEventsStream(t *testing.T) {
	srv := newTestServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	next := func() (string, events.StateChangedEvent) {
		var name string
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimPrefix(line, "event:")
			case strings.HasPrefix(line, "data:"):
				var ev events.StateChangedEvent
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &ev))
				return name, ev
			}
		}
		t.Fatalf("stream ended: %v", sc.Err())
		return "", events.StateChangedEvent{}
	}

	name, ev := next()
	assert.Equal(t, events.StateChanged, name)
	assert.Equal(t, "0", ev.Display)

	// The subscription is registered before the snapshot is written.
	do(t, srv, http.MethodPost, "/press", `["9"]`)

	name, ev = next()
	assert.Equal(t, events.StateChanged, name)
	assert.Equal(t, "9", ev.Display)
	assert.Equal(t, "9", ev.Button)
}

func TestDecodeButtons(t *testing.T) {
	got, err := decodeButtons([]byte(` ["1","×","=" ] `))
	require.NoError(t, err)
	assert.Equal(t, []calc.Button{calc.Digit1, calc.Multiply, calc.Equals}, got)

	got, err = decodeButtons([]byte(`"%"`))
	require.NoError(t, err)
	assert.Equal(t, []calc.Button{calc.Percent}, got)
}

func TestSetDivisionPrecision(t *testing.T) {
	p := filepath.Join(t.TempDir(), "calc.json")
	f, err := config.NewFile(p)
	require.NoError(t, err)
	setup(f)
	srv := httptest.NewServer(setupRoutes())
	t.Cleanup(srv.Close)

	code, _ := do(t, srv, http.MethodPut, "/division-precision", "5")
	require.Equal(t, http.StatusCreated, code)

	_, body := do(t, srv, http.MethodPost, "/press", `["2", "/", "3", "="]`)
	assert.Equal(t, "0.66667", decodeState(t, body).Display)

	saved, err := config.NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.DivisionPrecision())

	for _, bad := range []string{"0", "101", `"x"`} {
		code, _ = do(t, srv, http.MethodPut, "/division-precision", bad)
		assert.Equal(t, http.StatusBadRequest, code, "body %s", bad)
	}
}
