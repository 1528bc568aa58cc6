package api

import (
	"context"
	"errors"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
	xlogger "MarketPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketViews is what the market routes read from.
type MarketViews interface {
	Data(ctx context.Context) (map[string]models.Quote, error)
	Sectors(ctx context.Context) ([]models.Sector, error)
	Macro(ctx context.Context) (models.MacroView, error)
	Mover(ctx context.Context) (models.Mover, error)
	MoverHistory(ctx context.Context, limit int) ([]models.MoverRecord, error)
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Themes(ctx context.Context) ([]models.ThemeView, error)
	Score(ctx context.Context) (models.MarketScore, error)
	Stock(ctx context.Context, symbol string) (models.Quote, error)
	StockHistory(ctx context.Context, symbol string, days int) (models.StockHistory, error)
	Status() models.MarketStatus
}

// MarketEchoHandler serves the dashboard views under /api/market.
type MarketEchoHandler struct {
	logger *xlogger.Logger
	views  MarketViews
}

func NewMarketEchoHandler(logger *xlogger.Logger, views MarketViews) *MarketEchoHandler {
	return &MarketEchoHandler{logger: logger, views: views}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.GET("/data", h.Data)
	g.GET("/sectors", h.Sectors)
	g.GET("/macro", h.Macro)
	g.GET("/mover", h.Mover)
	g.GET("/mover-history", h.MoverHistory)
	g.GET("/snapshot", h.Snapshot)
	g.GET("/search", h.Search)
	g.GET("/themes", h.Themes)
	g.GET("/score", h.Score)
	g.GET("/stock/:symbol", h.Stock)
	g.GET("/history/:symbol", h.History)
	g.GET("/status", h.Status)
}

func (h *MarketEchoHandler) Data(c echo.Context) error {
	res, err := h.views.Data(c.Request().Context())
	if err != nil {
		return h.fail("market data", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Sectors(c echo.Context) error {
	res, err := h.views.Sectors(c.Request().Context())
	if err != nil {
		return h.fail("sector data", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Macro(c echo.Context) error {
	res, err := h.views.Macro(c.Request().Context())
	if err != nil {
		return h.fail("macro data", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Mover(c echo.Context) error {
	res, err := h.views.Mover(c.Request().Context())
	if err != nil {
		return h.fail("market mover", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) MoverHistory(c echo.Context) error {
	req := &models.MoverHistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.views.MoverHistory(c.Request().Context(), req.Limit)
	if err != nil {
		return h.fail("mover history", err)
	}
	if res == nil {
		res = []models.MoverRecord{}
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Snapshot(c echo.Context) error {
	res, err := h.views.Snapshot(c.Request().Context())
	if err != nil {
		return h.fail("market snapshot", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.views.Search(c.Request().Context(), req.Query)
	if err != nil {
		return h.fail("search results", err)
	}
	return xhttp.ResultsResponse(c, res)
}

func (h *MarketEchoHandler) Themes(c echo.Context) error {
	res, err := h.views.Themes(c.Request().Context())
	if err != nil {
		return h.fail("theme data", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Score(c echo.Context) error {
	res, err := h.views.Score(c.Request().Context())
	if err != nil {
		return h.fail("market score", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Stock(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.views.Stock(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.fail("stock data", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.views.StockHistory(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		return h.fail("stock history", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketEchoHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.views.Status())
}

// fail maps a view error onto the error envelope. Upstream failures are
// logged and surface as 500.
func (h *MarketEchoHandler) fail(what string, err error) error {
	switch {
	case errors.Is(err, errs.ErrInvalidSymbol):
		return xhttp.BadRequestError("Invalid symbol").WithError(err)
	case errors.Is(err, errs.ErrNoData):
		return xhttp.NotFoundErrorf("No %s available", what).WithError(err)
	}
	h.logger.Error("market view failed", xlogger.String("view", what), xlogger.Error(err))
	return xhttp.InternalErrorf("Failed to fetch %s", what).WithError(err)
}
