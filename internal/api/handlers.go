package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"smc-analyst/internal/analysis/indicators"
	"smc-analyst/internal/assistant"
	apperrors "smc-analyst/internal/errors"
	"smc-analyst/internal/logging"
	"smc-analyst/internal/models"
	"smc-analyst/internal/session"
)

// SnapshotTaker computes indicator snapshots for the market-data
// endpoint.
type SnapshotTaker interface {
	Take(ctx context.Context, series *models.CandleSeries) (*indicators.Snapshot, error)
}

type handlers struct {
	deps Deps
	log  zerolog.Logger
}

type sessionPatch struct {
	Bias        *string  `json:"bias"`
	Symbol      *string  `json:"symbol"`
	AssetClass  *string  `json:"asset_class"`
	Balance     *float64 `json:"balance"`
	RiskPercent *float64 `json:"risk_percent"`
}

type analyzeRequest struct {
	SessionID   string          `json:"session_id"`
	Symbol      string          `json:"symbol"`
	Candles     []models.Candle `json:"candles"`
	Bias        string          `json:"bias"`
	Price       float64         `json:"price"`
	Balance     float64         `json:"balance"`
	RiskPercent float64         `json:"risk_percent"`
	AssetClass  string          `json:"asset_class"`
}

type positionRequest struct {
	Balance     float64 `json:"balance"`
	RiskPercent float64 `json:"risk_percent"`
	Entry       float64 `json:"entry"`
	StopLoss    float64 `json:"stop_loss"`
	AssetClass  string  `json:"asset_class"`
}

func (h *handlers) createSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.deps.Sessions.Create())
}

func (h *handlers) getSession(c *gin.Context) {
	sess, err := h.deps.Sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) updateSession(c *gin.Context) {
	var patch sessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, apperrors.NewValidationError("body", nil, err.Error()))
		return
	}

	if patch.Bias != nil {
		if _, err := models.ParseBias(*patch.Bias); err != nil {
			h.fail(c, apperrors.NewValidationError("bias", *patch.Bias, err.Error()))
			return
		}
	}

	sess, err := h.deps.Sessions.Update(c.Param("id"), func(s *session.Session) {
		if patch.Bias != nil {
			s.Bias, _ = models.ParseBias(*patch.Bias)
		}
		if patch.Symbol != nil {
			s.Symbol = *patch.Symbol
		}
		if patch.AssetClass != nil {
			s.AssetClass = models.ParseAssetClass(*patch.AssetClass)
		}
		if patch.Balance != nil {
			s.Balance = *patch.Balance
		}
		if patch.RiskPercent != nil {
			s.RiskPct = *patch.RiskPercent
		}
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewValidationError("body", nil, err.Error()))
		return
	}

	if req.SessionID != "" {
		sess, err := h.deps.Sessions.Get(req.SessionID)
		if err != nil {
			h.fail(c, err)
			return
		}
		mergeSession(&req, sess)
		log := logging.WithSession(logging.FromContext(c.Request.Context()), req.SessionID)
		log.Debug().Str("symbol", req.Symbol).Msg("session defaults merged into request")
	}

	bias, err := models.ParseBias(req.Bias)
	if err != nil {
		h.fail(c, apperrors.NewValidationError("bias", req.Bias, err.Error()))
		return
	}

	candles := req.Candles
	if len(candles) == 0 && req.Symbol != "" {
		series, err := h.deps.Provider.Candles(c.Request.Context(), req.Symbol)
		if err != nil {
			h.fail(c, err)
			return
		}
		candles = series.Candles()
	}

	price := req.Price
	if price == 0 && len(candles) > 0 {
		price = candles[len(candles)-1].Close
	}

	analysis, err := h.deps.Assistant.Analyze(c.Request.Context(), assistant.Request{
		Symbol:      req.Symbol,
		Candles:     candles,
		Bias:        bias,
		Price:       price,
		Balance:     req.Balance,
		RiskPercent: req.RiskPercent,
		AssetClass:  models.ParseAssetClass(req.AssetClass),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	if req.SessionID != "" {
		_, _ = h.deps.Sessions.Update(req.SessionID, func(s *session.Session) {
			s.Bias = bias
			if req.Symbol != "" {
				s.Symbol = req.Symbol
			}
			s.AssetClass = analysis.TradeSetup.AssetClass
			s.Balance = req.Balance
			s.RiskPct = req.RiskPercent
		})
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *handlers) marketData(c *gin.Context) {
	symbol := c.Param("symbol")

	series, err := h.deps.Provider.Candles(c.Request.Context(), symbol)
	if err != nil {
		h.fail(c, err)
		return
	}
	quote, err := h.deps.Provider.Quote(c.Request.Context(), symbol)
	if err != nil {
		h.fail(c, err)
		return
	}
	snap, err := h.deps.Snapshots.Take(c.Request.Context(), series)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote":      quote,
		"indicators": snap,
		"candles":    series.Len(),
	})
}

func (h *handlers) calculatePosition(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.NewValidationError("body", nil, err.Error()))
		return
	}

	result, err := h.deps.Calculator.PositionSize(
		req.Balance, req.RiskPercent, req.Entry, req.StopLoss,
		models.ParseAssetClass(req.AssetClass))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// mergeSession fills unset request fields from the stored session.
func mergeSession(req *analyzeRequest, sess *session.Session) {
	if req.Bias == "" && sess.Bias != "" {
		req.Bias = string(sess.Bias)
	}
	if req.Symbol == "" {
		req.Symbol = sess.Symbol
	}
	if req.AssetClass == "" && sess.AssetClass != "" {
		req.AssetClass = string(sess.AssetClass)
	}
	if req.Balance == 0 {
		req.Balance = sess.Balance
	}
	if req.RiskPercent == 0 {
		req.RiskPercent = sess.RiskPct
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.Is(err, apperrors.ErrSessionNotFound):
		status = http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrInvalidInput),
		apperrors.Is(err, apperrors.ErrZeroRiskDistance):
		status = http.StatusUnprocessableEntity
	case apperrors.Is(err, apperrors.ErrDataUnavailable):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
