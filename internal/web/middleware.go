package web

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminRealm = `Basic realm="volei-admin"`

// requireAdmin guards the write endpoints with HTTP basic auth checked
// against the configured bcrypt hash. With no hash configured every request
// is refused.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok || !s.checkAdmin(user, password) {
			if ok {
				s.logger.Warn("admin authentication failed", zap.String("user", user), zap.String("path", r.URL.Path))
			}
			w.Header().Set("WWW-Authenticate", adminRealm)
			http.Error(w, "acesso negado", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkAdmin(user, password string) bool {
	if s.opts.AdminPasswordHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(s.opts.AdminUser)) != 1 {
		return false
	}
	return checkPassword(s.opts.AdminPasswordHash, password)
}

func checkPassword(hash string, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
