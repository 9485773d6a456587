package middleware

import (
	"net/http"

	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	"github.com/google/uuid"
)

// maxCorrelationIDLength bounds caller-supplied ids.
const maxCorrelationIDLength = 128

// Correlation attaches a correlation id to every request. A well-formed
// X-Correlation-Id from the caller is reused, otherwise a UUID is generated.
// The id is echoed on the response.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(pkghttp.CorrelationIDHeader)
		if !validCorrelationID(id) {
			id = uuid.NewString()
		}

		w.Header().Set(pkghttp.CorrelationIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pkghttp.WithCorrelationID(r.Context(), id)))
	})
}

// validCorrelationID accepts short printable ASCII tokens only, so ids are
// safe to log and echo.
func validCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
