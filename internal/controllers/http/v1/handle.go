package http

import (
	"github.com/gofiber/fiber/v2"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/services/advisor"
)

// ChatRequest is the conversational entry point payload.
type ChatRequest struct {
	Message     string `json:"message" validate:"required,min=1,max=2000" example:"What should I wear in 80302 today?"`
	Personalize bool   `json:"personalize" example:"false"`
}

// ChatMetadata describes how the response was produced.
type ChatMetadata struct {
	Zip          string  `json:"zip" example:"80302"`
	Path         string  `json:"path" example:"simple"`
	TemperatureF float64 `json:"temperature_f" example:"33.0"`
	Condition    string  `json:"condition" example:"rain"`
	Items        int     `json:"items" example:"4"`
}

// ChatResponse is the conversational reply plus structured metadata.
type ChatResponse struct {
	Response string       `json:"response"`
	Metadata ChatMetadata `json:"metadata"`
}

// RecommendationResponse is the full structured advisory result.
type RecommendationResponse struct {
	Zip            string                    `json:"zip" example:"80302"`
	Path           string                    `json:"path" example:"complex"`
	Snapshot       models.ConditionsSnapshot `json:"snapshot"`
	Recommendation models.RecommendationSet  `json:"recommendation"`
}

// BatchRequest asks for recommendations for several ZIP codes at once.
type BatchRequest struct {
	Zips        []string `json:"zips" validate:"required,min=1,dive,len=5,numeric"`
	Personalize bool     `json:"personalize"`
}

// BatchEntry is one per-ZIP slot in a batch response. Failed ZIPs carry an
// error message instead of a recommendation; they never fail the batch.
type BatchEntry struct {
	Zip            string                     `json:"zip"`
	Error          string                     `json:"error,omitempty"`
	ErrorKind      string                     `json:"error_kind,omitempty"`
	Path           string                     `json:"path,omitempty"`
	Snapshot       *models.ConditionsSnapshot `json:"snapshot,omitempty"`
	Recommendation *models.RecommendationSet  `json:"recommendation,omitempty"`
}

// BatchResponse maps each requested ZIP to its outcome.
type BatchResponse struct {
	Results []BatchEntry `json:"results"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"That ZIP code is not recognized. Try a different, valid US ZIP code."`
	Kind  string `json:"kind,omitempty" example:"not_found"`
}

// Chat godoc
// @Summary Conversational clothing advice
// @Description Extracts a US ZIP code from a free-form message and returns clothing advice for the current weather there
// @Tags Advisor
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat message containing a 5-digit ZIP code"
// @Success 200 {object} ChatResponse "Successful response"
// @Failure 400 {object} ErrorResponse "No valid ZIP code in message"
// @Failure 404 {object} ErrorResponse "ZIP code unknown to the weather provider"
// @Failure 503 {object} ErrorResponse "Weather provider unavailable"
// @Router /api/v1/chat [post]
func (r *routes) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body: expected JSON with a message field",
			Kind:  string(models.KindInvalidFormat),
		})
	}

	if err := r.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Message is required and must be under 2000 characters",
			Kind:  string(models.KindInvalidFormat),
		})
	}

	result, err := r.advisor.Advise(c.Context(), req.Message, advisor.Options{Personalize: req.Personalize})
	if err != nil {
		return r.renderError(c, err)
	}

	return c.JSON(ChatResponse{
		Response: renderChatText(result),
		Metadata: ChatMetadata{
			Zip:          result.Query.Zip(),
			Path:         string(result.Path),
			TemperatureF: result.Snapshot.TempF,
			Condition:    string(result.Snapshot.Condition),
			Items:        len(result.Set.Items),
		},
	})
}

// Recommendation godoc
// @Summary Structured clothing recommendation
// @Description Returns the full snapshot and recommendation set for one ZIP code
// @Tags Advisor
// @Produce json
// @Param zip query string true "5-digit US ZIP code" example(80302)
// @Param personalize query boolean false "Request personalized reasoning"
// @Success 200 {object} RecommendationResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Malformed ZIP code"
// @Failure 404 {object} ErrorResponse "ZIP code unknown to the weather provider"
// @Failure 503 {object} ErrorResponse "Weather provider unavailable"
// @Router /api/v1/recommendation [get]
func (r *routes) handleRecommendation(c *fiber.Ctx) error {
	query, err := models.ParseLocationQuery(c.Query("zip"))
	if err != nil {
		return r.renderError(c, err)
	}

	personalize := c.QueryBool("personalize")

	result, err := r.advisor.AdviseZip(c.Context(), query, advisor.Options{Personalize: personalize})
	if err != nil {
		return r.renderError(c, err)
	}

	return c.JSON(RecommendationResponse{
		Zip:            result.Query.Zip(),
		Path:           string(result.Path),
		Snapshot:       result.Snapshot,
		Recommendation: result.Set,
	})
}

// RecommendationBatch godoc
// @Summary Clothing recommendations for several ZIP codes
// @Description Fans out concurrent weather fetches for every requested ZIP code; failures are reported per ZIP and never fail the batch
// @Tags Advisor
// @Accept json
// @Produce json
// @Param request body BatchRequest true "ZIP codes to fetch"
// @Success 200 {object} BatchResponse "Per-ZIP outcomes"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Router /api/v1/recommendations [post]
func (r *routes) handleRecommendationBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body: expected JSON with a zips array",
			Kind:  string(models.KindInvalidFormat),
		})
	}

	if err := r.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "zips must contain between 1 and the configured maximum of 5-digit ZIP codes",
			Kind:  string(models.KindInvalidFormat),
		})
	}

	if len(req.Zips) > r.cfg.MaxBatchSize {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "too many ZIP codes in one batch",
			Kind:  string(models.KindInvalidFormat),
		})
	}

	queries := make([]models.LocationQuery, 0, len(req.Zips))
	invalid := make(map[string]error)
	for _, z := range req.Zips {
		q, err := models.ParseLocationQuery(z)
		if err != nil {
			invalid[z] = err
			continue
		}
		queries = append(queries, q)
	}

	results := r.advisor.AdviseMany(c.Context(), queries, advisor.Options{Personalize: req.Personalize})

	entries := make([]BatchEntry, 0, len(req.Zips))
	rendered := make(map[string]struct{}, len(req.Zips))
	for _, z := range req.Zips {
		if _, done := rendered[z]; done {
			continue
		}
		rendered[z] = struct{}{}

		if err, bad := invalid[z]; bad {
			entries = append(entries, BatchEntry{
				Zip:       z,
				Error:     models.UserMessage(err),
				ErrorKind: string(models.KindOf(err)),
			})
			continue
		}

		q, _ := models.ParseLocationQuery(z)
		br, ok := results[q]
		if !ok || (br.Err == nil && br.Result == nil) {
			continue
		}

		if br.Err != nil {
			entries = append(entries, BatchEntry{
				Zip:       z,
				Error:     models.UserMessage(br.Err),
				ErrorKind: string(models.KindOf(br.Err)),
			})
			continue
		}

		entries = append(entries, BatchEntry{
			Zip:            z,
			Path:           string(br.Result.Path),
			Snapshot:       &br.Result.Snapshot,
			Recommendation: &br.Result.Set,
		})
	}

	return c.JSON(BatchResponse{Results: entries})
}

func (r *routes) renderError(c *fiber.Ctx, err error) error {
	kind := models.KindOf(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case models.KindInvalidFormat:
		status = fiber.StatusBadRequest
	case models.KindNotFound:
		status = fiber.StatusNotFound
	case models.KindUpstream:
		status = fiber.StatusServiceUnavailable
	}

	if kind == models.KindUpstream {
		r.l.Error(err, map[string]any{"kind": string(kind)})
	}

	return c.Status(status).JSON(ErrorResponse{
		Error: models.UserMessage(err),
		Kind:  string(kind),
	})
}

func renderChatText(result advisor.Result) string {
	text := result.Set.Summary
	for _, item := range result.Set.Items {
		text += "\n- " + item.Item
		if item.Rationale != "" {
			text += " (" + item.Rationale + ")"
		}
	}
	if result.Set.Advisory != "" {
		text += "\n" + result.Set.Advisory
	}
	return text
}
