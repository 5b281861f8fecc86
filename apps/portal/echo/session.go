package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
)

const (
	contextSessionKey = "session"

	// the browser may send its refresh token so that expiring access tokens get renewed;
	// the renewed token is sent back in headerAccessToken
	headerRefreshToken = "X-Refresh-Token"
	headerAccessToken  = "X-Access-Token"
)

// sessionMiddleware attaches a *core.Session to every request.
// Requests without a bearer token get an anonymous session.
func sessionMiddleware(api Backend) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := &core.Session{}
			if token := bearerToken(ctx.Request()); token != "" {
				sess.AccessToken = token
				sess.RefreshToken = ctx.Request().Header.Get(headerRefreshToken)

				refreshed, err := api.Authenticate(ctx.Request().Context(), sess)
				if err != nil {
					if core.IsUnauthorized(err) {
						return errUnauthorized
					}
					return errors.Wrap(err, "authenticating session")
				}
				if refreshed {
					ctx.Response().Header().Set(headerAccessToken, sess.AccessToken)
				}
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get(echo.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// getContextSession returns the request's session; nil outside of /v1.
func getContextSession(ctx echo.Context) *core.Session {
	sess, _ := ctx.Get(contextSessionKey).(*core.Session)
	return sess
}
