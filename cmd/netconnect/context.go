package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"netconnect/internal/config"
	"netconnect/internal/logging"
	"netconnect/internal/netconnectd"
)

type commandContext struct {
	socketFlag  *string
	configFlag  *string
	timeoutFlag *int

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(socketFlag, configFlag *string, timeoutFlag *int) *commandContext {
	return &commandContext{
		socketFlag:  socketFlag,
		configFlag:  configFlag,
		timeoutFlag: timeoutFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	if cfg == nil {
		fallback := config.Default()
		return &fallback
	}
	return cfg
}

func (c *commandContext) socketPath() string {
	if c.socketFlag != nil && strings.TrimSpace(*c.socketFlag) != "" {
		return strings.TrimSpace(*c.socketFlag)
	}
	return c.configValue().Daemon.Socket
}

func (c *commandContext) timeout() time.Duration {
	if c.timeoutFlag != nil && *c.timeoutFlag > 0 {
		return time.Duration(*c.timeoutFlag) * time.Second
	}
	return c.configValue().DaemonTimeout()
}

// client builds a one-shot protocol client. CLI commands surface failures
// as returned errors, so the client itself logs nowhere.
func (c *commandContext) client() *netconnectd.Client {
	return netconnectd.New(c.socketPath(), c.timeout(), logging.NewNop())
}

// wrapClientError adds a start-here hint to connection-level failures.
func (c *commandContext) wrapClientError(err error) error {
	if err == nil {
		return nil
	}
	if netconnectd.IsKind(err, netconnectd.KindConnect) {
		return fmt.Errorf("%w (socket %s; is netconnectd running?)", err, c.socketPath())
	}
	return err
}
