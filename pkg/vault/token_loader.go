package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenSource defines where to resolve the Vault token from
type TokenSource string

const (
	TokenSourceAuto TokenSource = "auto"
	TokenSourceEnv  TokenSource = "env"
	TokenSourceFile TokenSource = "file"
)

// ResolveToken returns the token for source. Auto tries the explicit token, then
// $VAULT_TOKEN, then the token file (default ~/.vault-token).
func ResolveToken(explicitToken string, source TokenSource, tokenFile string) (string, error) {
	switch source {
	case TokenSourceEnv:
		return fromEnv(explicitToken)
	case TokenSourceFile:
		return fromFile(tokenFile)
	case TokenSourceAuto, "":
		if t, err := fromEnv(explicitToken); err == nil {
			return t, nil
		}
		if t, err := fromFile(tokenFile); err == nil {
			return t, nil
		}
		return "", fmt.Errorf("unable to resolve Vault token (tried flag, env, file)")
	}
	return "", fmt.Errorf("unknown token source: %s", source)
}

func fromEnv(explicitToken string) (string, error) {
	if explicitToken != "" {
		return explicitToken, nil
	}
	if t := os.Getenv("VAULT_TOKEN"); t != "" {
		return t, nil
	}
	return "", fmt.Errorf("no token found in environment")
}

func fromFile(path string) (string, error) {
	home, _ := os.UserHomeDir()
	switch {
	case path == "" && home != "":
		path = filepath.Join(home, ".vault-token")
	case strings.HasPrefix(path, "~") && home != "":
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", path, err)
	}
	t := strings.TrimSpace(string(data))
	if t == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return t, nil
}
