package http

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "inspect_session"

// CookieConfig controls the attributes stamped on the session cookie.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	TTL      time.Duration
}

// CookieConfigForEnv returns the cookie policy for the given environment.
// Development keeps SameSite lax over plain HTTP so local frontends work;
// everything else gets strict same-site cookies over HTTPS only.
func CookieConfigForEnv(env string, ttl time.Duration) CookieConfig {
	if env == "development" {
		return CookieConfig{
			Secure:   false,
			SameSite: http.SameSiteLaxMode,
			TTL:      ttl,
		}
	}
	return CookieConfig{
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		TTL:      ttl,
	}
}

// setSessionCookie writes the session token as an httpOnly cookie.
func setSessionCookie(w http.ResponseWriter, cfg CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// sessionToken extracts the raw session token from the request cookie.
func sessionToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
