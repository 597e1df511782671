package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
	"github.com/charlie0129/calc/pkg/events"
)

var (
	session *calc.Session
	conf    config.Config
	sseHub  *events.EventHub
	metrics *calcMetrics
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/state", getState)
	router.POST("/press", press)
	router.PUT("/clear", clearSession)
	router.GET("/config", getConfig)
	router.PUT("/division-precision", setDivisionPrecision)
	router.GET("/version", getVersion)
	router.GET("/events", streamEvents)
	router.GET("/metrics", gin.WrapH(metrics.handler()))

	return router
}

// setup wires the package state around c. It is called once by Run, and by
// tests with an in-memory config.
func setup(c config.Config) {
	conf = c
	sseHub = events.NewEventHub()
	metrics = newCalcMetrics(sseHub)
	session = calc.NewSession(calc.WithDivisionPrecision(int32(conf.DivisionPrecision())))
	session.OnChange(onStateChange)
}

func onStateChange(from, to calc.State, b calc.Button) {
	metrics.observe(from, to, b)

	logrus.WithFields(logrus.Fields{
		"button":   b.String(),
		"display":  to.Display,
		"operator": to.ArmedOperator.String(),
		"error":    to.Error,
	}).Debug("state changed")

	if !conf.PublishEvents() {
		return
	}

	now := time.Now().Unix()
	sseHub.Publish(events.StateChanged, events.StateChangedEvent{
		Button:        b.String(),
		Display:       to.Display,
		ClearLabel:    string(to.ClearLabel),
		ArmedOperator: to.ArmedOperator.String(),
		Error:         to.Error,
		Ts:            now,
	})
	if b == calc.Clear {
		sseHub.Publish(events.SessionReset, events.SessionResetEvent{
			Reason: "clear",
			Ts:     now,
		})
	}
}

func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	c, err := config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(c.LogrusFields()).Infof("config loaded")

	setup(c)
	router := setupRoutes()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := c.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			session.Configure(calc.WithDivisionPrecision(int32(conf.DivisionPrecision())))
			sseHub.Publish(events.SessionReset, events.SessionResetEvent{
				Reason: "reload",
				Ts:     time.Now().Unix(),
			})
			logrus.WithFields(c.LogrusFields()).Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	// A stale socket from an unclean shutdown would make Listen fail.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("failed to remove stale socket %s: %v", unixSocketPath, err)
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.WithField("display", session.Snapshot().Display).Info("exiting")
	return nil
}
