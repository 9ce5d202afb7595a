package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PersistentJar is an http.CookieJar that mirrors every cookie the
// backend sets into a file, so separate CLI invocations share one
// session. Only cookies received from the backend are stored; nothing
// is synthesized client-side.
type PersistentJar struct {
	mu    sync.Mutex
	inner http.CookieJar
	path  string
	state map[string][]storedCookie
}

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// NewPersistentJar creates a jar backed by the given file. A missing
// or unreadable file starts an empty jar, which the session layer
// treats as logged out.
func NewPersistentJar(path string) (*PersistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	j := &PersistentJar{
		inner: inner,
		path:  path,
		state: make(map[string][]storedCookie),
	}
	j.load()
	return j, nil
}

// SetCookies stores cookies for the URL and flushes them to disk
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()

	key := u.Scheme + "://" + u.Host
	existing := j.state[key]
	for _, c := range cookies {
		stored := storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		replaced := false
		for i := range existing {
			if existing[i].Name == c.Name {
				existing[i] = stored
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, stored)
		}
	}
	j.state[key] = existing
	j.flushLocked()
}

// Cookies returns the cookies to send with a request to the URL
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// load replays the persisted cookies into the in-memory jar. Expired
// entries are skipped, which is how a stale session naturally decays
// into logged out.
func (j *PersistentJar) load() {
	if j.path == "" {
		return
	}

	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}

	var state map[string][]storedCookie
	if err := json.Unmarshal(data, &state); err != nil {
		return
	}

	now := time.Now()
	for key, cookies := range state {
		u, err := url.Parse(key)
		if err != nil {
			continue
		}
		var live []*http.Cookie
		var kept []storedCookie
		for _, c := range cookies {
			if !c.Expires.IsZero() && c.Expires.Before(now) {
				continue
			}
			live = append(live, &http.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Domain:   c.Domain,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HttpOnly: c.HTTPOnly,
			})
			kept = append(kept, c)
		}
		if len(live) > 0 {
			j.inner.SetCookies(u, live)
			j.state[key] = kept
		}
	}
}

// flushLocked writes the jar state to disk. Persistence failures are
// deliberately swallowed: a read-only home directory degrades to an
// in-memory session, not a broken client.
func (j *PersistentJar) flushLocked() {
	if j.path == "" {
		return
	}

	data, err := json.MarshalIndent(j.state, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(j.path, data, 0o600)
}

// Clear drops every stored cookie, in memory and on disk
func (j *PersistentJar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if inner, err := cookiejar.New(nil); err == nil {
		j.inner = inner
	}
	j.state = make(map[string][]storedCookie)
	if j.path != "" {
		_ = os.Remove(j.path)
	}
}
