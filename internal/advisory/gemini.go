package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

const defaultModel = "gemini-2.5-flash"

// Gemini is the live advisory service. Every operation parses the
// model's output defensively and falls back to the static service on
// any failure; callers never see an error from the external endpoint.
type Gemini struct {
	apiKey   string
	model    string
	fallback *Static

	mu     sync.Mutex
	client *genai.Client
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = defaultModel
	}
	return &Gemini{
		apiKey:   apiKey,
		model:    model,
		fallback: NewStatic(),
	}
}

// getClient creates the genai client lazily so construction never
// performs I/O.
func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (g *Gemini) PlanTrip(ctx context.Context, query string) ([]RouteOption, error) {
	prompt := fmt.Sprintf(
		"You are a trip planner for major South African cities. Your ONLY available transport options are "+
			"Rea Vaya, Metrobus, Gautrain, MyCiTi, Areyeng, Tshwane Bus Service, and PRASA. Do NOT include "+
			"minibus taxis, e-hailing services, or private vehicles. Based on the user's request, provide 1 to 3 "+
			"route options using ONLY the allowed public transport. For each route provide a title, a tag "+
			"('Recommended', 'Cheapest', or 'Fastest'), an estimated total fare in ZAR, an estimated travel "+
			"time, and a list of steps. User request: %q", query)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   routePlanSchema,
	}

	raw, err := g.generate(ctx, prompt, config)
	if err != nil {
		logger.Errorf("advisory plan trip failed, serving mock plan: %v", err)
		metrics.RecordAdvisoryRequest("plan_trip", "fallback")
		return g.fallback.PlanTrip(ctx, query)
	}

	var routes []RouteOption
	if err := json.Unmarshal([]byte(raw), &routes); err != nil || len(routes) == 0 {
		logger.Errorf("advisory plan trip returned unusable payload: %v", err)
		metrics.RecordAdvisoryRequest("plan_trip", "fallback")
		return g.fallback.PlanTrip(ctx, query)
	}

	metrics.RecordAdvisoryRequest("plan_trip", "success")
	return sanitizeRoutes(routes), nil
}

func (g *Gemini) Categorize(ctx context.Context, description string) (ledger.ReportCategory, error) {
	prompt := fmt.Sprintf(
		"Classify the following user report into one of these categories: \"crowded\", \"delay\", \"hazard\", "+
			"\"info\", or \"other\". Respond with only the category name in lowercase. Report: %q", description)

	raw, err := g.generate(ctx, prompt, nil)
	if err != nil {
		logger.Errorf("advisory categorize failed, using keyword fallback: %v", err)
		metrics.RecordAdvisoryRequest("categorize", "fallback")
		return g.fallback.Categorize(ctx, description)
	}

	category := ledger.ReportCategory(strings.ToLower(raw))
	if !ledger.ValidCategory(category) {
		logger.Errorf("advisory returned invalid category %q, defaulting to other", raw)
		metrics.RecordAdvisoryRequest("categorize", "fallback")
		return ledger.CategoryOther, nil
	}

	metrics.RecordAdvisoryRequest("categorize", "success")
	return category, nil
}

func (g *Gemini) JourneyUpdate(ctx context.Context, trip ledger.Trip, alert ledger.TransitAlert) (JourneyUpdate, error) {
	prompt := fmt.Sprintf(
		"You are a proactive travel assistant. The user is on a trip from %s to %s using %s. An alert has just "+
			"been issued: \"%s: %s\". Analyze the situation. If it is a significant disruption, include an "+
			"alternative route using only South African public transport. Also offer a short message suitable "+
			"for notifying a contact about the delay. Formulate a friendly, concise userMessage explaining the "+
			"situation and the proposed solution.",
		trip.From, trip.To, trip.Provider, alert.Title, alert.Description)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   journeyUpdateSchema,
	}

	raw, err := g.generate(ctx, prompt, config)
	if err != nil {
		logger.Errorf("advisory journey update failed, serving static message: %v", err)
		metrics.RecordAdvisoryRequest("journey_update", "fallback")
		return g.fallback.JourneyUpdate(ctx, trip, alert)
	}

	var update JourneyUpdate
	if err := json.Unmarshal([]byte(raw), &update); err != nil || update.UserMessage == "" {
		logger.Errorf("advisory journey update returned unusable payload: %v", err)
		metrics.RecordAdvisoryRequest("journey_update", "fallback")
		return g.fallback.JourneyUpdate(ctx, trip, alert)
	}

	if update.AlternativeRoute != nil {
		cleaned := sanitizeRoutes([]RouteOption{*update.AlternativeRoute})
		if len(cleaned) == 0 {
			update.AlternativeRoute = nil
		} else {
			update.AlternativeRoute = &cleaned[0]
		}
	}

	metrics.RecordAdvisoryRequest("journey_update", "success")
	return update, nil
}

// sanitizeRoutes drops routes that mention providers outside the
// allowed set. The model is told the rules but is not trusted.
func sanitizeRoutes(routes []RouteOption) []RouteOption {
	cleaned := routes[:0]
	for _, route := range routes {
		valid := len(route.Steps) > 0
		for _, step := range route.Steps {
			if !ledger.ValidProvider(step.Provider) {
				valid = false
				break
			}
		}
		if valid && route.Title != "" {
			cleaned = append(cleaned, route)
		}
	}
	return cleaned
}

var routeStepSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"provider":    {Type: genai.TypeString},
		"from":        {Type: genai.TypeString},
		"to":          {Type: genai.TypeString},
		"instruction": {Type: genai.TypeString},
	},
	Required: []string{"provider", "from", "to", "instruction"},
}

var routeOptionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":      {Type: genai.TypeString},
		"tag":        {Type: genai.TypeString},
		"totalFare":  {Type: genai.TypeNumber},
		"travelTime": {Type: genai.TypeString},
		"steps":      {Type: genai.TypeArray, Items: routeStepSchema},
	},
	Required: []string{"title", "tag", "totalFare", "travelTime", "steps"},
}

var routePlanSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: routeOptionSchema,
}

var journeyUpdateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"userMessage":         {Type: genai.TypeString},
		"alternativeRoute":    routeOptionSchema,
		"notificationMessage": {Type: genai.TypeString},
	},
	Required: []string{"userMessage"},
}
