/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/fatih/structs"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/appleboy/gin-jwt/v2"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/store"
	"github.com/nethesis/app-registry/utils"
)

const (
	identityKey  = "id"
	loginUserKey = "login_user"
	RequestIDKey = "request_id"
	// RequestIDHeader is read from the request when present and always echoed.
	RequestIDHeader = "X-Request-ID"
)

var errLoginFailed = errors.New("Server error during login")

// Authenticator checks a login pair, satisfied by *store.Store.
type Authenticator interface {
	Authenticate(ctx context.Context, login string, password string) (*models.User, error)
}

// InitJWT builds the login and token middleware on top of the user table.
func InitJWT(users Authenticator) (*jwt.GinJWTMiddleware, error) {
	// define jwt middleware
	authMiddleware, errDefine := jwt.New(&jwt.GinJWTMiddleware{
		Realm:       "app-registry",
		Key:         []byte(configuration.Config.Secret),
		Timeout:     time.Hour * 12,
		MaxRefresh:  time.Hour * 24,
		IdentityKey: identityKey,
		Authenticator: func(c *gin.Context) (interface{}, error) {
			// check login credentials exists
			var loginVals models.LoginJson
			if err := c.ShouldBind(&loginVals); err != nil {
				return nil, jwt.ErrMissingLoginValues
			}

			user, err := users.Authenticate(c.Request.Context(), loginVals.Username, loginVals.Password)
			if errors.Is(err, store.ErrInvalidCredentials) {
				return nil, jwt.ErrFailedAuthentication
			}
			if err != nil {
				utils.LogError(errors.Wrap(err, "[AUTH] login lookup failed"))
				return nil, errLoginFailed
			}

			// kept for the login response
			c.Set(loginUserKey, *user)
			return user, nil
		},
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if user, ok := data.(*models.User); ok {
				return jwt.MapClaims{
					identityKey: user.LoginName,
					"user_id":   int64(user.UserID),
				}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(c *gin.Context) interface{} {
			claims := jwt.ExtractClaims(c)
			login, _ := claims[identityKey].(string)
			return login
		},
		LoginResponse: func(c *gin.Context, code int, token string, t time.Time) {
			user, _ := c.Get(loginUserKey)
			loggedIn, _ := user.(models.User)
			c.JSON(http.StatusOK, structs.Map(models.LoginResponse{
				Success: true,
				User:    loggedIn,
				Token:   token,
				Expire:  t.Format(time.RFC3339),
			}))
		},
		LogoutResponse: func(c *gin.Context, code int) {
			c.JSON(http.StatusOK, structs.Map(models.MutationResult{Success: true, Message: "Logged out"}))
		},
		Unauthorized: func(c *gin.Context, code int, message string) {
			switch message {
			case jwt.ErrMissingLoginValues.Error():
				code = http.StatusBadRequest
				message = "Username and password are required"
			case jwt.ErrFailedAuthentication.Error():
				message = "Invalid credentials"
			case errLoginFailed.Error():
				code = http.StatusInternalServerError
			}
			c.JSON(code, structs.Map(models.ErrorResponse{Error: message}))
		},
		TokenLookup:   "header: Authorization, query: jwt",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
	})

	// check middleware errors
	if errDefine != nil {
		return nil, errors.Wrap(errDefine, "[AUTH] middleware definition error")
	}

	// init middleware
	if errInit := authMiddleware.MiddlewareInit(); errInit != nil {
		return nil, errors.Wrap(errInit, "[AUTH] middleware initialization error")
	}

	return authMiddleware, nil
}

// Identify reads an optional bearer token. A valid token sets the acting
// user of the request, a missing or invalid one is ignored.
func Identify(authMiddleware *jwt.GinJWTMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authMiddleware.GetClaimsFromJWT(c)
		if err == nil {
			if login, ok := claims[identityKey].(string); ok && login != "" {
				c.Set(models.ActingUserKey, login)
			}
		}
		c.Next()
	}
}

// RequireIdentity rejects mutations without a valid token when REQUIRE_AUTH
// is set. Reads are always allowed.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !configuration.Config.RequireAuth || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		if c.GetString(models.ActingUserKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, structs.Map(models.ErrorResponse{
				Error: "Authentication required",
			}))
			return
		}
		c.Next()
	}
}

// RequestID tags every request with an id, reusing the caller's when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
