package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenCookieName = "token"

// TokenHandler mints the signed session token for an identity payload.
type TokenHandler struct {
	jwtSecret     string
	tokenDuration time.Duration
	production    bool
}

func NewTokenHandler(jwtSecret string, tokenDuration time.Duration, production bool) *TokenHandler {
	return &TokenHandler{jwtSecret: jwtSecret, tokenDuration: tokenDuration, production: production}
}

type issueTokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type issueTokenResponse struct {
	Token string `json:"token"`
}

// Issue signs a one-hour HS256 claim for the identity and delivers it both in
// the envelope and as the http-only `token` cookie. Cookie attributes depend
// on the deployment environment: cross-site in production, lax in development.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"name":  req.Name,
		"exp":   time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int(h.tokenDuration / time.Second),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	}
	if h.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)

	writeSuccess(w, http.StatusCreated, "token issued", issueTokenResponse{Token: tokenStr})
}
