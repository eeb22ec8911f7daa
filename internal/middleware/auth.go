package middleware

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds API-key authentication configuration.
type AuthConfig struct {
	// KeyHashes are bcrypt hashes of the accepted API keys.
	KeyHashes []string

	// SkipPaths are paths that don't require authentication. A path
	// ending in "*" matches by prefix.
	SkipPaths []string

	// Enabled determines if authentication is enforced.
	Enabled bool
}

// AuthMiddleware provides API-key authentication for the HTTP façade.
// Keys are compared against stored bcrypt hashes so plaintext keys
// never live in memory longer than a request.
type AuthMiddleware struct {
	config  *AuthConfig
	mu      sync.RWMutex
	skipMap map[string]bool
}

// NewAuthMiddleware creates a new authentication middleware.
func NewAuthMiddleware(config *AuthConfig) *AuthMiddleware {
	m := &AuthMiddleware{
		config:  config,
		skipMap: make(map[string]bool),
	}
	for _, path := range config.SkipPaths {
		m.skipMap[path] = true
	}
	return m
}

// Wrap wraps an http.Handler with authentication.
func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		enabled := m.config.Enabled
		hashes := m.config.KeyHashes
		m.mu.RUnlock()

		if !enabled || m.shouldSkipAuth(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := m.extractAPIKey(r)
		if apiKey == "" {
			m.unauthorized(w, "Missing API key")
			return
		}

		if !m.validateAPIKey(apiKey, hashes) {
			log.Printf("AuthMiddleware: invalid API key attempt from %s", r.RemoteAddr)
			m.unauthorized(w, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// shouldSkipAuth checks if the path should skip authentication.
func (m *AuthMiddleware) shouldSkipAuth(path string) bool {
	if m.skipMap[path] {
		return true
	}
	for skipPath := range m.skipMap {
		if strings.HasSuffix(skipPath, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(skipPath, "*")) {
				return true
			}
		}
	}
	return false
}

// extractAPIKey extracts the API key from the request.
// Supports: Authorization header (Bearer/ApiKey) and X-API-Key header.
func (m *AuthMiddleware) extractAPIKey(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer ")
		}
		if strings.HasPrefix(authHeader, "ApiKey ") {
			return strings.TrimPrefix(authHeader, "ApiKey ")
		}
	}
	return r.Header.Get("X-API-Key")
}

// validateAPIKey compares the provided key against every stored hash.
func (m *AuthMiddleware) validateAPIKey(provided string, hashes []string) bool {
	for _, hash := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(provided)) == nil {
			return true
		}
	}
	return false
}

func (m *AuthMiddleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer realm=\"API\"")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write([]byte(`{"error":"` + message + `"}`)); err != nil {
		log.Printf("Failed to write error response: %v", err)
	}
}

// SetKeyHashes replaces the accepted key hashes at runtime.
func (m *AuthMiddleware) SetKeyHashes(hashes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.KeyHashes = hashes
	m.config.Enabled = len(hashes) > 0
}

// IsEnabled returns whether authentication is enabled.
func (m *AuthMiddleware) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Enabled
}
