// Package browser opens published posts in the system web browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Opener implements ports.BrowserOpener
type Opener struct {
	siteURL string
}

// NewOpener creates a browser opener for the site at siteURL
func NewOpener(siteURL string) *Opener {
	return &Opener{siteURL: strings.TrimRight(siteURL, "/")}
}

// OpenPost opens the post's public page
func (o *Opener) OpenPost(slug string) error {
	cmd, err := command(runtime.GOOS, o.URL(slug))
	if err != nil {
		return err
	}
	return cmd.Run()
}

// URL returns {site.url}/blog/{slug} with each path segment escaped
func (o *Opener) URL(slug string) string {
	parts := strings.Split(strings.Trim(slug, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return o.siteURL + "/blog/" + strings.Join(parts, "/")
}

func command(goos, uri string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", uri), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", uri), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", uri), nil
	}
	return nil, fmt.Errorf("unsupported operating system: %s", goos)
}
