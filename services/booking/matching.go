package booking

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
	"cleanslate/services/geo"
	"cleanslate/services/intelligence"
	"cleanslate/utils"

	"go.uber.org/zap"
)

const noWorkerAvailable = "NO_WORKER_AVAILABLE"

// MatchingService picks a worker for a customer request and confirms the quote.
type MatchingService interface {
	Match(ctx context.Context, req models.MatchRequest) (*models.MatchResult, error)
}

type DefaultMatchingService struct {
	bookings      *DefaultBookingService
	workers       workerRepo.WorkerRepository
	locator       geo.Locator
	generator     intelligence.Generator
	cache         intelligence.MatchCache
	logger        *zap.Logger
	defaultRadius float64
}

// NewMatchingService wires the matcher. generator and cache may be nil; without a
// generator the deterministic matcher is used.
func NewMatchingService(
	bookings *DefaultBookingService,
	workers workerRepo.WorkerRepository,
	locator geo.Locator,
	generator intelligence.Generator,
	cache intelligence.MatchCache,
	logger *zap.Logger,
	defaultRadiusKm float64,
) *DefaultMatchingService {
	return &DefaultMatchingService{
		bookings:      bookings,
		workers:       workers,
		locator:       locator,
		generator:     generator,
		cache:         cache,
		logger:        logger,
		defaultRadius: defaultRadiusKm,
	}
}

type matchPromptInput struct {
	models.MatchRequest
	Start                  string
	RequiredSkills         []string
	EstimatedDurationHours string
	EstimatedTotalCost     string
	HourlyRate             string
	NearbyWorkerInfo       string
	Items                  []matchPromptItem
}

type matchPromptItem struct {
	ID          string
	Name        string
	Minutes     int
	MaterialFee string
}

var matchPrompt = template.Must(template.New("match").Parse(
	`You are an expert scheduling and quoting assistant for Clean Slate, a domestic services company.
Your task is to find the best available worker for a customer's request, confirm the service details, and provide a final quote.

Customer Request Details:
- Service Type: {{.ServiceType}}
- Location: Latitude: {{.Location.Lat}}, Longitude: {{.Location.Lng}}
- Preferred Date and Time: {{.Start}}
- Requested Service Categories: {{range $i, $s := .RequiredSkills}}{{if $i}}, {{end}}{{$s}}{{end}}
- Specific Service Items (IDs): {{range $i, $s := .ServiceItemIDs}}{{if $i}}, {{end}}{{$s}}{{end}}
- System Estimated Duration: {{.EstimatedDurationHours}} hours
- System Estimated Total Cost: R{{.EstimatedTotalCost}}
- Customer Notes: {{.CustomerNotes}}

Available Workers (IDs): {{.NearbyWorkerInfo}}

Instructions:
1. Review the list of selected service items and the customer's notes.
2. Confirm whether the system's estimated duration ({{.EstimatedDurationHours}} hours) and cost (R{{.EstimatedTotalCost}}) are reasonable.
   - You may slightly adjust the duration (in minutes) and total price (in Rands) when the notes or the combination of services call for it. Explain any adjustment in "confirmationNotes".
   - The worker's standard hourly rate is R{{.HourlyRate}}. Material fees are included in the system's estimated cost.
3. From the available worker IDs ({{.NearbyWorkerInfo}}), select the MOST SUITABLE worker for the requested categories.
4. Output the matched worker's ID, the final estimated price and the final estimated duration in minutes.

Respond with JSON only:
{"workerId": "...", "estimatedPrice": 250.00, "estimatedDurationMinutes": 150, "confirmationNotes": "..."}

If no suitable worker can be found from the provided list, use "` + noWorkerAvailable + `" for workerId and explain in confirmationNotes.
The selected service items with their individual estimates are:
{{range .Items}}  - {{.Name}} (ID: {{.ID}}): {{.Minutes}} mins, R{{.MaterialFee}} material fee
{{end}}
Begin!
`))

type aiMatchOutput struct {
	WorkerID                 string  `json:"workerId"`
	EstimatedPrice           float64 `json:"estimatedPrice"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	ConfirmationNotes        string  `json:"confirmationNotes"`
}

// Match finds nearby workers, asks the model to choose one and falls back to
// the first suitable available worker when no model is configured, the call
// fails or the model picks an ineligible worker.
func (m *DefaultMatchingService) Match(ctx context.Context, req models.MatchRequest) (*models.MatchResult, error) {
	if len(req.ServiceItemIDs) == 0 {
		return nil, utils.NewValidationError("selectedServiceItems", "select at least one service")
	}
	start, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, utils.NewValidationError("dateTime", "must be an RFC 3339 timestamp")
	}
	if req.RadiusKm <= 0 {
		req.RadiusKm = m.defaultRadius
	}

	quote := ComputeQuote(DefaultHourlyRateCents, req.ServiceItemIDs)
	if len(quote.UnknownServiceIDs) > 0 {
		return nil, utils.NewValidationError("selectedServiceItems", fmt.Sprintf("unknown service items %v", quote.UnknownServiceIDs))
	}

	nearby, err := m.locator.FindWorkersNear(ctx, req.Location, req.RadiusKm)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	key := fingerprint(req, nearby)
	if m.cache != nil {
		if cached, ok, err := m.cache.Get(ctx, key); err != nil {
			m.logger.Warn("match cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	var result *models.MatchResult
	if m.generator != nil {
		result, err = m.matchWithModel(ctx, req, start, quote, nearby)
		if err != nil && !isNoMatch(err) {
			m.logger.Warn("model matching failed, using system matcher", zap.Error(err))
			result, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	if result == nil {
		result, err = m.matchBySystem(ctx, start, req.ServiceItemIDs, nearby)
		if err != nil {
			return nil, err
		}
	}

	if m.cache != nil {
		if err := m.cache.Set(ctx, key, result); err != nil {
			m.logger.Warn("match cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func isNoMatch(err error) bool {
	var me *MatchError
	return errors.As(err, &me)
}

func (m *DefaultMatchingService) matchWithModel(ctx context.Context, req models.MatchRequest, start time.Time, quote models.Quote, nearby []string) (*models.MatchResult, error) {
	prompt, err := BuildMatchPrompt(req, start, quote, nearby)
	if err != nil {
		return nil, err
	}
	raw, err := m.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	out, err := parseMatchOutput(raw)
	if err != nil {
		return nil, err
	}
	if out.WorkerID == "" || out.WorkerID == noWorkerAvailable {
		return nil, NewMatchError(out.ConfirmationNotes)
	}
	w, q, err := m.eligibleChoice(ctx, out.WorkerID, start, req.ServiceItemIDs, nearby)
	if err != nil {
		return nil, err
	}

	cents := int64(math.Round(out.EstimatedPrice * 100))
	duration, cents := ClampAdjustment(q, out.EstimatedDurationMinutes, cents)
	if duration > q.DurationMinutes {
		ok, err := m.bookings.isAvailable(ctx, w, start, duration)
		if err != nil {
			return nil, err
		}
		if !ok {
			duration = q.DurationMinutes
		}
	}
	return &models.MatchResult{
		WorkerID:                 w.ID,
		EstimatedPrice:           float64(cents) / 100,
		EstimatedPriceCents:      cents,
		EstimatedDurationMinutes: duration,
		ConfirmationNotes:        out.ConfirmationNotes,
		Source:                   "ai",
	}, nil
}

// eligibleChoice checks a model's pick against the same rules the system matcher
// applies: nearby, Active, offering every category and free at start.
func (m *DefaultMatchingService) eligibleChoice(ctx context.Context, workerID string, start time.Time, itemIDs, nearby []string) (*models.Worker, models.Quote, error) {
	listed := false
	for _, id := range nearby {
		if id == workerID {
			listed = true
			break
		}
	}
	if !listed {
		return nil, models.Quote{}, fmt.Errorf("model chose worker %s outside the nearby list", workerID)
	}
	w, err := m.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, models.Quote{}, fmt.Errorf("model chose unknown worker %s: %w", workerID, err)
	}
	if w.Status != models.WorkerActive {
		return nil, models.Quote{}, fmt.Errorf("model chose worker %s with status %s", w.ID, w.Status)
	}
	q := ComputeQuote(w.HourlyRateCents, itemIDs)
	if !CoversSkills(w.ServicesOffered, q.RequiredSkills) {
		return nil, models.Quote{}, fmt.Errorf("model chose worker %s who does not offer %v", w.ID, q.RequiredSkills)
	}
	ok, err := m.bookings.isAvailable(ctx, w, start, q.DurationMinutes)
	if err != nil {
		return nil, models.Quote{}, err
	}
	if !ok {
		return nil, models.Quote{}, fmt.Errorf("model chose worker %s who is busy at %s", w.ID, start.Format(time.RFC3339))
	}
	return w, q, nil
}

func (m *DefaultMatchingService) matchBySystem(ctx context.Context, start time.Time, itemIDs []string, nearby []string) (*models.MatchResult, error) {
	for _, id := range nearby {
		w, err := m.workers.GetByID(ctx, id)
		if err != nil || w.Status != models.WorkerActive {
			continue
		}
		q := ComputeQuote(w.HourlyRateCents, itemIDs)
		if !CoversSkills(w.ServicesOffered, q.RequiredSkills) {
			continue
		}
		ok, err := m.bookings.isAvailable(ctx, w, start, q.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return &models.MatchResult{
			WorkerID:                 w.ID,
			EstimatedPrice:           float64(q.TotalCents) / 100,
			EstimatedPriceCents:      q.TotalCents,
			EstimatedDurationMinutes: q.DurationMinutes,
			ConfirmationNotes:        fmt.Sprintf("%s is available and offers every requested category.", w.FullName),
			Source:                   "system",
		}, nil
	}
	return nil, NewMatchError("")
}

// BuildMatchPrompt renders the matching prompt for a request.
func BuildMatchPrompt(req models.MatchRequest, start time.Time, quote models.Quote, nearby []string) (string, error) {
	in := matchPromptInput{
		MatchRequest:           req,
		Start:                  start.Format(time.RFC3339),
		EstimatedDurationHours: fmt.Sprintf("%.2f", float64(quote.DurationMinutes)/60),
		EstimatedTotalCost:     rands(quote.TotalCents),
		HourlyRate:             rands(quote.HourlyRateCents),
		NearbyWorkerInfo:       "No nearby workers found by the system.",
	}
	if in.ServiceType == "" {
		in.ServiceType = "Custom Domestic Services"
	}
	if in.CustomerNotes == "" {
		in.CustomerNotes = "None"
	}
	for _, skill := range quote.RequiredSkills {
		in.RequiredSkills = append(in.RequiredSkills, CategoryName(skill))
	}
	if len(nearby) > 0 {
		in.NearbyWorkerInfo = strings.Join(nearby, ", ")
	}
	for _, id := range req.ServiceItemIDs {
		if item, _, ok := LookupItem(id); ok {
			in.Items = append(in.Items, matchPromptItem{
				ID:          item.ID,
				Name:        item.Name,
				Minutes:     item.EstimatedTimeMinutes,
				MaterialFee: rands(item.MaterialFeeCents),
			})
		}
	}

	var buf bytes.Buffer
	if err := matchPrompt.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render match prompt: %w", err)
	}
	return buf.String(), nil
}

func parseMatchOutput(raw string) (*aiMatchOutput, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	var out aiMatchOutput
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return nil, fmt.Errorf("model returned malformed match output: %w", err)
	}
	return &out, nil
}

func fingerprint(req models.MatchRequest, nearby []string) string {
	b, _ := json.Marshal(struct {
		Req    models.MatchRequest `json:"req"`
		Nearby []string            `json:"nearby"`
	}{req, nearby})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func rands(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
