package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fuel-pos-agent/internal/ledger"
	"fuel-pos-agent/internal/store"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers a natural-language question about the business by
// letting the model call read-only tools over the store. The agent
// never mutates the ledger - it reads prices, daily numbers and loans.
func RunAgent(s *store.Store, userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format(ledger.DateLayout)

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s (dd/mm/yyyy). You are the assistant of a fuel station owner.

	RULES:
	1. PRICES: If the user asks about a fuel price, brand or unit, call 'check_prices' and read the answer from the list. Do NOT guess prices.
	2. SALES: If the user asks about sales, money received or debt for a day, call 'get_daily_report' with the date in dd/mm/yyyy. No date means today.
	3. LOANS: If the user asks who owes money or how much debt is open, call 'get_loans_summary'.
	4. Amounts are whole Iraqi dinars (IQD).

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_prices",
					Description: "Get the full fuel price list: product, brand, unit and unit price in IQD.",
				},
				{
					Name:        "get_daily_report",
					Description: "Get total sales, money received, open debt and fuel volume for one day.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"date": {Type: genai.TypeString, Description: "Day to report on (dd/mm/yyyy). Omit for today."},
						},
					},
				},
				{
					Name:        "get_loans_summary",
					Description: "Get the open loans: total debt, number of loans and number of debtors.",
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_prices":
				return executeCheckPrices(ctx, session, s)
			case "get_daily_report":
				return executeDailyReport(ctx, session, s, funcCall)
			case "get_loans_summary":
				return executeLoansSummary(ctx, session, s)
			}
		}
	}

	return printResponse(resp), nil
}

// --- TOOL EXECUTORS ---

func executeCheckPrices(ctx context.Context, session *genai.ChatSession, s *store.Store) (string, error) {
	type simpleEntry struct {
		Product string  `json:"product"`
		Brand   string  `json:"brand"`
		Unit    string  `json:"unit"`
		Price   float64 `json:"price_iqd"`
	}
	var list []simpleEntry
	for _, e := range s.Prices() {
		list = append(list, simpleEntry{
			Product: e.Product,
			Brand:   e.Brand,
			Unit:    e.Unit,
			Price:   e.UnitPrice,
		})
	}

	jsonBytes, _ := json.Marshal(list)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_prices",
		Response: map[string]interface{}{"prices": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeDailyReport(ctx context.Context, session *genai.ChatSession, s *store.Store, funcCall genai.FunctionCall) (string, error) {
	day := time.Now()
	if raw, ok := funcCall.Args["date"].(string); ok && raw != "" {
		parsed, err := ledger.ParseDay(raw)
		if err != nil {
			return "Error: Dates must be in dd/mm/yyyy format.", nil
		}
		day = parsed
	}

	totals := s.DailyTotals(day)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_daily_report",
		Response: map[string]interface{}{
			"date":        day.Format(ledger.DateLayout),
			"total_sales": totals.TotalSales,
			"total_paid":  totals.TotalPaid,
			"total_debt":  totals.TotalDebt,
			"sale_count":  totals.Count,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeLoansSummary(ctx context.Context, session *genai.ChatSession, s *store.Store) (string, error) {
	loans, totalDebt, debtors := s.LoansSummary(ledger.Filter{})

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_loans_summary",
		Response: map[string]interface{}{
			"total_debt_iqd": totalDebt,
			"loan_count":     len(loans),
			"unique_debtors": debtors,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
