package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
)

// UserIDHeader names the acting user. It is optional; requests without it
// act as the configured default creator.
const UserIDHeader = "X-User-Id"

// Identity reads UserIDHeader into the request context. A value that is not
// a positive integer is rejected with 400.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			logger.FromContext(r.Context()).Debug("rejected user id header",
				slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid "+UserIDHeader+" header: expected a positive integer")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), userID)))
	})
}
