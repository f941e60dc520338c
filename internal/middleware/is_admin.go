package middleware

import (
	"net/http"

	"openfleet/fleetkeeper/internal/constants"
	reqcontext "openfleet/fleetkeeper/internal/context"
)

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := reqcontext.GetUserClaims(r.Context())

			if claims == nil || !claims.IsAdmin() {
				http.Error(w, constants.ErrMsgAdminRequired, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
