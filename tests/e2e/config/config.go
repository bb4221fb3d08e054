// Package config resolves E2E test configuration from the environment.
package config

import (
	"net"
	"net/url"
	"os"
	"time"
)

// TestConfig holds all configuration for E2E tests.
type TestConfig struct {
	BaseURL       string
	Timeout       time.Duration
	Headless      bool
	Screenshots   bool
	AdminUser     string
	AdminPassword string
}

// GetConfig returns the test configuration from environment variables.
func GetConfig() *TestConfig {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:1717"
	}

	adminUser := os.Getenv("ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin"
	}

	return &TestConfig{
		BaseURL:       baseURL,
		Timeout:       30 * time.Second,
		Headless:      os.Getenv("HEADLESS") != "false",
		Screenshots:   os.Getenv("SCREENSHOTS") != "false",
		AdminUser:     adminUser,
		AdminPassword: adminPassword,
	}
}

// ServerReachable reports whether the target server accepts TCP
// connections; tests skip instead of failing when it is down.
func (c *TestConfig) ServerReachable() bool {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return false
	}
	host := u.Host
	if u.Port() == "" {
		host += ":80"
	}
	d := net.Dialer{Timeout: 500 * time.Millisecond}
	conn, err := d.Dial("tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
