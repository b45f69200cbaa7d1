package httpapi

import (
	"bytes"
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/clima-ecuador/internal/dashboard"
	"github.com/i474232898/clima-ecuador/internal/gazetteer"
	"github.com/i474232898/clima-ecuador/internal/store"
	"github.com/i474232898/clima-ecuador/internal/timezone"
	"github.com/i474232898/clima-ecuador/internal/view"
)

var validate = validator.New()

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Sessions *store.SessionStore
	// NewDashboard builds the controller for a new browser session.
	NewDashboard func() *dashboard.Controller
	TimeZones    timezone.Resolver
	Logger       *zap.Logger
}

type handlers struct {
	Deps
	logger *zap.Logger
}

// ErrorHandler is the centralized error response used by the Fiber app.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &handlers{Deps: deps, logger: deps.Logger.Named("http")}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "clima-ecuador",
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/gazetteer", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"provinces":       gazetteer.Provinces(),
			"defaultProvince": gazetteer.DefaultProvince,
			"defaultCity":     gazetteer.DefaultCity,
		})
	})

	v1.Get("/gazetteer/:province", func(c *fiber.Ctx) error {
		province, err := url.PathUnescape(c.Params("province"))
		if err != nil || !gazetteer.HasProvince(province) {
			return fiber.NewError(fiber.StatusNotFound, "unknown province")
		}
		return c.JSON(fiber.Map{
			"province": province,
			"cities":   gazetteer.Cities(province),
		})
	})

	app.Get("/", h.session, h.page)
	v1.Get("/dashboard", h.session, h.dashboard)

	sel := v1.Group("/selection", h.session)
	sel.Post("/province", h.selectProvince)
	sel.Post("/city", h.selectCity)
	sel.Post("/day", h.selectDay)

	views := v1.Group("/views", h.session)
	views.Get("/conditions", func(c *fiber.Ctx) error {
		return c.JSON(h.build(c).Card)
	})
	views.Get("/days", func(c *fiber.Ctx) error {
		return c.JSON(h.build(c).Days)
	})
	views.Get("/chart", h.chart)
	views.Get("/table", func(c *fiber.Ctx) error {
		return c.JSON(h.build(c).Table)
	})
	views.Get("/table.csv", h.tableCSV)
}

// pageQuery holds the selections that can be applied through the page URL.
type pageQuery struct {
	Province string `query:"province"`
	City     string `query:"city"`
	Day      string `query:"day" validate:"omitempty,datetime=2006-01-02"`
	Series   string `query:"series" validate:"omitempty,oneof=temperature humidity precipitation"`
}

func (h *handlers) page(c *fiber.Ctx) error {
	var q pageQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	ctrl := sess.Controller
	ctx := c.UserContext()

	// Province first: it resets the city.
	if q.Province != "" {
		if !gazetteer.HasProvince(q.Province) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown province")
		}
		if q.Province != ctrl.View().Province {
			ctrl.SelectProvince(ctx, q.Province)
		}
	}
	if q.City != "" {
		if !gazetteer.HasCity(ctrl.View().Province, q.City) {
			return fiber.NewError(fiber.StatusBadRequest, "city does not belong to province")
		}
		ctrl.SelectCity(ctx, q.City)
	}
	if q.Day != "" {
		ctrl.SelectDay(q.Day)
	}
	if q.Series != "" {
		if err := h.Sessions.SetSeries(sess.ID, q.Series); err == nil {
			sess.Series = q.Series
		}
	}

	page := view.Build(ctrl.View(), view.ParseSeries(sess.Series), h.TimeZones)

	var buf bytes.Buffer
	if err := renderPage(&buf, page); err != nil {
		h.logger.Error("render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *handlers) dashboard(c *fiber.Ctx) error {
	return c.JSON(h.build(c))
}

type provinceRequest struct {
	Province string `json:"province" validate:"required"`
}

type cityRequest struct {
	City string `json:"city" validate:"required"`
}

type dayRequest struct {
	Day string `json:"day" validate:"required,datetime=2006-01-02"`
}

func (h *handlers) selectProvince(c *fiber.Ctx) error {
	var req provinceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !gazetteer.HasProvince(req.Province) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown province")
	}

	currentSession(c).Controller.SelectProvince(c.UserContext(), req.Province)
	return c.JSON(h.build(c))
}

func (h *handlers) selectCity(c *fiber.Ctx) error {
	var req cityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctrl := currentSession(c).Controller
	if !gazetteer.HasCity(ctrl.View().Province, req.City) {
		return fiber.NewError(fiber.StatusBadRequest, "city does not belong to province")
	}

	ctrl.SelectCity(c.UserContext(), req.City)
	return c.JSON(h.build(c))
}

func (h *handlers) selectDay(c *fiber.Ctx) error {
	var req dayRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	currentSession(c).Controller.SelectDay(req.Day)
	return c.JSON(h.build(c))
}

type chartQuery struct {
	Series string `query:"series" validate:"omitempty,oneof=temperature humidity precipitation"`
}

func (h *handlers) chart(c *fiber.Ctx) error {
	var q chartQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := currentSession(c)
	if q.Series != "" {
		if err := h.Sessions.SetSeries(sess.ID, q.Series); err == nil {
			sess.Series = q.Series
		}
	}

	return c.JSON(view.BuildHourlyChart(sess.Controller.View().Hourly, view.ParseSeries(sess.Series)))
}

func (h *handlers) tableCSV(c *fiber.Ctx) error {
	table := h.build(c).Table

	var buf bytes.Buffer
	if err := view.WriteCSV(&buf, table); err != nil {
		h.logger.Error("write csv", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export table")
	}

	name := "pronostico.csv"
	if table.Day != "" {
		name = "pronostico-" + table.Day + ".csv"
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *handlers) build(c *fiber.Ctx) view.Page {
	sess := currentSession(c)
	return view.Build(sess.Controller.View(), view.ParseSeries(sess.Series), h.TimeZones)
}

func bindAndValidate(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
