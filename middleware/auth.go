package middleware

import (
	"errors"
	"net/http"
	"strings"

	directoryRepo "viacampo/database/repository/directory"
	"viacampo/models"
	"viacampo/services/access"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ActorKey is the gin context key carrying the caller identity.
	ActorKey = "actor"
	// AppUserKey is the gin context key carrying the directory row.
	AppUserKey = "appUser"
)

// JWTAuthMiddleware validates the bearer session token, checks it against
// the revocation store, resolves the caller's directory row through the
// profile cache and blocks inactive users.
func JWTAuthMiddleware(dir directoryRepo.DirectoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		uid, email, err := utils.TokenIdentity(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		valid, err := utils.SessionTokenValid(c.Request.Context(), utils.GetAuthCacheClient(), uid, tokenString)
		if err != nil || !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		user, err := access.ResolveUser(c.Request.Context(), utils.GetAuthCacheClient(), dir, uid, email)
		if err != nil {
			status, msg := directoryFailure(err)
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Usuário inativo. Procure um administrador."})
			return
		}

		c.Set(ActorKey, models.Actor{UID: uid, Email: email})
		c.Set(AppUserKey, *user)
		c.Next()
	}
}

// directoryFailure maps a directory lookup error onto the auth gate
// response: a missing row means the caller is not registered, anything else
// is a store failure and not the caller's fault.
func directoryFailure(err error) (int, string) {
	if errors.Is(err, directoryRepo.ErrNotFound) {
		return http.StatusUnauthorized, "Usuário não cadastrado"
	}
	return http.StatusBadGateway, "Diretório de usuários indisponível"
}

// ActorFrom returns the authenticated caller identity set by
// JWTAuthMiddleware. The zero Actor means unauthenticated.
func ActorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// AppUserFrom returns the caller's directory row set by JWTAuthMiddleware.
func AppUserFrom(c *gin.Context) (models.AppUser, bool) {
	if v, ok := c.Get(AppUserKey); ok {
		if user, ok := v.(models.AppUser); ok {
			return user, true
		}
	}
	return models.AppUser{}, false
}
