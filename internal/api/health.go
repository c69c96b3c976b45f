package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the service major version this client speaks.
const SupportedMajor = "v2"

// ServiceInfo describes the running service.
type ServiceInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Health reports whether the service answers its health check.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, c.url("/health"), nil, c.cfg.PresetTimeout)
	return err
}

// ServiceInfo fetches the name and version from the service root.
func (c *Client) ServiceInfo(ctx context.Context) (ServiceInfo, error) {
	root, err := rootURL(c.cfg.BaseURL)
	if err != nil {
		return ServiceInfo{}, err
	}
	data, err := c.send(ctx, http.MethodGet, root, nil, c.cfg.PresetTimeout)
	if err != nil {
		return ServiceInfo{}, err
	}
	var out ServiceInfo
	if err := decodeValidated(data, schemaInfo, &out); err != nil {
		return ServiceInfo{}, err
	}
	return out, nil
}

// CheckCompatible returns an error unless version is a semantic version
// with the supported major.
func CheckCompatible(version string) error {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("service version %q is not a semantic version", version)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("service version %s is not supported (need %s.x)", semver.Canonical(v), SupportedMajor)
	}
	return nil
}

func rootURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	u.Path = "/"
	u.RawPath = ""
	u.RawQuery = ""
	return u.String(), nil
}
