package vault

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/vault/api"
	"github.com/rs/zerolog/log"
)

// Client reads job defaults from a Vault KV engine.
type Client struct {
	client *api.Client
}

// NewClient creates a Vault client and checks that the server answers.
func NewClient(ctx context.Context, address, token string) (*Client, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	client.SetToken(token)

	if _, err := client.Sys().HealthWithContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Vault at %s: %w", address, err)
	}
	return &Client{client: client}, nil
}

// ReadDefaults reads the secret at path (KV v2 first, then KV v1) and keeps the
// string-valued keys.
func (c *Client) ReadDefaults(ctx context.Context, path string) (map[string]string, error) {
	data, err := c.readKVv2(ctx, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("KV v2 read failed, trying KV v1")
		data, err = c.readKVv1(ctx, path)
		if err != nil {
			return nil, err
		}
	}
	return StringValues(data), nil
}

func (c *Client) readKVv1(ctx context.Context, path string) (map[string]interface{}, error) {
	secret, err := c.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from path %s: %w", path, err)
	}
	if secret == nil {
		return nil, fmt.Errorf("no secret found at path %s", path)
	}
	return secret.Data, nil
}

func (c *Client) readKVv2(ctx context.Context, path string) (map[string]interface{}, error) {
	mount, rest := splitMount(path)
	fullPath := fmt.Sprintf("%s/data/%s", mount, rest)
	secret, err := c.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from KV v2 path %s: %w", fullPath, err)
	}
	if secret == nil {
		return nil, fmt.Errorf("no secret found at KV v2 path %s", fullPath)
	}
	// KV v2 wraps the actual data in a "data" field
	if data, ok := secret.Data["data"].(map[string]interface{}); ok {
		return data, nil
	}
	return nil, fmt.Errorf("invalid KV v2 secret format at path %s", fullPath)
}

func splitMount(path string) (string, string) {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// StringValues keeps the entries of data whose value is a string. Job resource fields
// are all strings, so anything else in the secret is ignored.
func StringValues(data map[string]interface{}) map[string]string {
	out := make(map[string]string, len(data))
	var skipped []string
	for k, v := range data {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			skipped = append(skipped, k)
		}
	}
	if len(skipped) > 0 {
		sort.Strings(skipped)
		log.Debug().Strs("keys", skipped).Msg("ignoring non-string Vault values")
	}
	return out
}
