package middleware

import (
	"net/http"
	"strings"

	"openfleet/fleetkeeper/internal/auth"
	"openfleet/fleetkeeper/internal/constants"
	reqcontext "openfleet/fleetkeeper/internal/context"
	"openfleet/fleetkeeper/internal/db/repositories"
	"openfleet/fleetkeeper/internal/logging"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the caller's identity from an API key or a bearer
// session token and places UserClaims in the request context. Authentication
// itself lives outside the fleet domain; everything downstream only consumes
// the claims.
func AuthMiddleware(userRepo *repositories.UserRepositoryGORM, keysRepo *repositories.KeysRepo, signingSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				parsed, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrSignatureInvalid
					}
					return signingSecret, nil
				})
				if err != nil || !parsed.Valid {
					http.Error(w, "Unauthorized. Invalid session token", http.StatusUnauthorized)
					return
				}
				mapClaims, _ := parsed.Claims.(jwt.MapClaims)
				userID, _ := mapClaims["sub"].(string)
				role, _ := mapClaims["role"].(string)
				if userID == "" {
					http.Error(w, "Unauthorized. Invalid session token", http.StatusUnauthorized)
					return
				}
				claims = &auth.JWTClaims{
					UserUUID:  userID,
					RoleValue: constants.UserRole(role),
				}

			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				user, err := userRepo.GetByID(r.Context(), keyRes.UserID)
				if err != nil || user == nil {
					logging.Warn("API key resolved to unknown user", "user_id", keyRes.UserID)
					http.Error(w, "Unauthorized. Unknown user", http.StatusUnauthorized)
					return
				}

				claims = &auth.APIKeyClaims{
					UserUUID:  user.ID,
					RoleValue: user.Role,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := reqcontext.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
