package devserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/pkg/auth"
)

const ginContextKeyOwnerID = "ownerID"

// errorBody writes the service's error envelope: {message, statusCode, errors?}.
func errorBody(message string, statusCode int, fields map[string][]string) gin.H {
	body := gin.H{"message": message, "statusCode": statusCode}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	return body
}

func authMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Authorization header is required", http.StatusUnauthorized, nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Invalid token format", http.StatusUnauthorized, nil))
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Invalid or expired token", http.StatusUnauthorized, nil))
			return
		}

		c.Set(ginContextKeyOwnerID, claims.OwnerID)

		c.Next()
	}
}

func ownerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ginContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
