// Package auth provides GitHub credential resolution.
// The token used for authenticated calls is always supplied from outside the
// binary: an explicit value, the GitHub CLI, or the environment.
package auth

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoCredential is returned when no provider yields a token.
var ErrNoCredential = errors.New("no GitHub credential configured")

// TokenProvider defines the interface for obtaining a GitHub authentication token.
// Implementations may use different sources (CLI tools, environment variables, etc).
type TokenProvider interface {
	GetToken() (string, error)
}

// StaticProvider returns a token given explicitly via flag or config.
type StaticProvider struct {
	Token string
}

// GetToken returns the configured token, or an error if it is blank.
func (s StaticProvider) GetToken() (string, error) {
	token := strings.TrimSpace(s.Token)
	if token == "" {
		return "", errors.New("no explicit token given")
	}
	return token, nil
}

// GhCliProvider obtains tokens by shelling out to the GitHub CLI (`gh auth token`).
type GhCliProvider struct{}

// GetToken shells out to `gh auth token` to retrieve the current token.
// Returns an error if gh CLI is not installed, not authenticated, or the command fails.
func (g *GhCliProvider) GetToken() (string, error) {
	cmd := exec.Command("gh", "auth", "token", "--hostname", "github.com")
	output, err := cmd.Output()
	if err != nil {
		// Check if it's an exec error (gh not found)
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", errors.New("gh CLI not found in PATH")
		}
		return "", fmt.Errorf("gh auth token failed: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", errors.New("gh auth token returned empty token")
	}

	return token, nil
}

// EnvProvider obtains tokens from an environment variable, GITHUB_TOKEN by default.
type EnvProvider struct {
	Var string
}

// GetToken reads the environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	name := e.Var
	if name == "" {
		name = "GITHUB_TOKEN"
	}
	token := strings.TrimSpace(os.Getenv(name))
	if token == "" {
		return "", fmt.Errorf("%s environment variable not set or empty", name)
	}
	return token, nil
}

// Chain tries each provider in order and returns the first token found.
type Chain []TokenProvider

// GetToken returns the first successful token. When every provider fails the
// error wraps ErrNoCredential and lists each cause.
func (c Chain) GetToken() (string, error) {
	causes := make([]string, 0, len(c))
	for _, p := range c {
		token, err := p.GetToken()
		if err == nil {
			return token, nil
		}
		causes = append(causes, err.Error())
	}
	return "", fmt.Errorf("%w (%s)", ErrNoCredential, strings.Join(causes, "; "))
}

// DefaultChain returns the provider order used by the application:
// 1. the explicit token (flag or GHBROWSE_TOKEN)
// 2. gh CLI
// 3. GITHUB_TOKEN
func DefaultChain(explicit string) Chain {
	return Chain{
		StaticProvider{Token: explicit},
		&GhCliProvider{},
		&EnvProvider{Var: "GITHUB_TOKEN"},
	}
}

// GetToken resolves a token through DefaultChain.
func GetToken(explicit string) (string, error) {
	return DefaultChain(explicit).GetToken()
}
