package config

import "fmt"

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Address     string `json:"address"`
	MaxUploadMB int    `json:"max_upload_mb"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.MaxUploadMB == 0 {
		c.MaxUploadMB = 16
	}
}

func (c ServerConfig) Validate() error {
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("max_upload_mb must not be negative")
	}
	return nil
}

// MaxUploadBytes returns the request body limit.
func (c ServerConfig) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }
