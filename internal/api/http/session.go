package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/clima-ecuador/internal/store"
)

const (
	sessionCookie = "clima_session"
	sessionLocal  = "session"
)

// session attaches the caller's dashboard to the request, creating and
// loading a fresh one for new or expired sessions.
func (h *handlers) session(c *fiber.Ctx) error {
	id := c.Cookies(sessionCookie)

	sess, err := h.Sessions.Get(id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		ctrl := h.NewDashboard()
		st := ctrl.Refresh(c.UserContext())
		sess = h.Sessions.Create(ctrl)

		h.logger.Info("new dashboard session",
			zap.String("session", sess.ID),
			zap.String("location", st.Location().Key()),
			zap.Bool("stale", st.Stale()),
		)

		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
		})
	}

	c.Locals(sessionLocal, sess)
	return c.Next()
}

func currentSession(c *fiber.Ctx) *store.Session {
	return c.Locals(sessionLocal).(*store.Session)
}
