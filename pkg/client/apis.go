package client

import (
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
)

// Press sends buttons to the daemon, applied in order as one batch.
func (c *Client) Press(buttons ...calc.Button) (*calc.State, error) {
	if len(buttons) == 0 {
		return nil, pkgerrors.New("no buttons to press")
	}
	payload, err := json.Marshal(buttons)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to marshal buttons")
	}
	ret, err := c.Post("/press", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to press buttons")
	}
	return parseStateResponse(ret)
}

// Clear sends a Clear press.
func (c *Client) Clear() (*calc.State, error) {
	ret, err := c.Put("/clear", "")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to clear")
	}
	return parseStateResponse(ret)
}

func (c *Client) GetState() (*calc.State, error) {
	ret, err := c.Get("/state")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get state")
	}
	return parseStateResponse(ret)
}

func (c *Client) SetDivisionPrecision(digits int) (string, error) {
	return c.Put("/division-precision", strconv.Itoa(digits))
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	var v string
	if err := json.Unmarshal([]byte(strings.TrimSpace(ret)), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}

func parseStateResponse(resp string) (*calc.State, error) {
	var s calc.State
	if err := json.Unmarshal([]byte(resp), &s); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal state")
	}
	return &s, nil
}
