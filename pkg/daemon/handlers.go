package daemon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
	"github.com/charlie0129/calc/pkg/version"
)

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getState(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, session.Snapshot())
}

// press accepts either a JSON array of buttons or a single button string.
func press(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	buttons, err := decodeButtons(body)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	state := session.Press(buttons...)

	logrus.WithFields(logrus.Fields{
		"presses": len(buttons),
		"display": state.Display,
	}).Infof("handled key presses")

	c.IndentedJSON(http.StatusOK, state)
}

func decodeButtons(body []byte) ([]calc.Button, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("no buttons given")
	}

	if body[0] != '[' {
		var one calc.Button
		if err := json.Unmarshal(body, &one); err != nil {
			return nil, err
		}
		return []calc.Button{one}, nil
	}

	var many []calc.Button
	if err := json.Unmarshal(body, &many); err != nil {
		return nil, err
	}
	if len(many) == 0 {
		return nil, errors.New("no buttons given")
	}
	return many, nil
}

func setDivisionPrecision(c *gin.Context) {
	var p int
	if err := c.BindJSON(&p); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if p < config.MinDivisionPrecision || p > config.MaxDivisionPrecision {
		err := fmt.Errorf("division precision must be between %d and %d, got %d",
			config.MinDivisionPrecision, config.MaxDivisionPrecision, p)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetDivisionPrecision(p)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	session.Configure(calc.WithDivisionPrecision(int32(p)))

	logrus.Infof("set division precision to %d", p)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("quotients now keep %d fractional digits", p))
}

func clearSession(c *gin.Context) {
	state := session.Reset()
	logrus.Infof("session cleared")
	c.IndentedJSON(http.StatusOK, state)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
