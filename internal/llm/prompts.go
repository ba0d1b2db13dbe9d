package llm

import (
	"fmt"
	"strings"

	"fleetchat/internal/models"
)

// EmptyStatePrompt is used when the resolved window holds no records: pure
// onboarding guidance, no figures.
const EmptyStatePrompt = `You are FleetChat, a friendly business assistant for drivers and small fleet owners.

The user has not logged any trip records for the selected period yet.
Do not invent or estimate any figures. Instead:
- Explain that insights appear once daily trip records are logged.
- Encourage them to record each day's earnings, distance and expenses (fuel, toll, repair, food, misc).
- Suggest registering their vehicles with rated mileage and monthly costs for deeper analysis.
Keep answers short, encouraging and practical.`

const promptHeader = `You are FleetChat, a business analyst for drivers and small fleet owners.
Ground every answer strictly in the figures below. Never invent numbers,
never extrapolate beyond the stated period, and say so plainly when the
data cannot answer the question. Currency amounts are in rupees.`

// ComposeSystemPrompt renders the aggregated context into the deterministic
// system prompt for one turn.
func ComposeSystemPrompt(uc models.UserContext) string {
	if !uc.HasData {
		return EmptyStatePrompt
	}

	var b strings.Builder
	b.WriteString(promptHeader)

	fmt.Fprintf(&b, "\n\nPeriod: %s (%s to %s, %d days)\n",
		uc.Period.Label,
		uc.Period.Start.Format("2006-01-02"),
		uc.Period.End.Format("2006-01-02"),
		uc.Period.Days,
	)

	s := uc.Summary
	fmt.Fprintf(&b, "\nSummary:\n")
	fmt.Fprintf(&b, "- Total earnings: ₹%.2f\n", s.TotalEarnings)
	fmt.Fprintf(&b, "- Total expenses: ₹%.2f\n", s.TotalExpenses)
	fmt.Fprintf(&b, "- Net profit: ₹%.2f\n", s.NetProfit)
	fmt.Fprintf(&b, "- Distance driven: %.2f km over %d trips\n", s.TotalDistance, s.TripCount)

	total := uc.Expenses.Total()
	b.WriteString("\nExpenses by category:\n")
	for _, c := range uc.Expenses.Categories() {
		if c.Amount == 0 {
			continue
		}
		share := 0.0
		if total > 0 {
			share = c.Amount / total * 100
		}
		fmt.Fprintf(&b, "- %s: ₹%.2f (%.1f%% of expenses)\n", c.Category, c.Amount, share)
	}
	fmt.Fprintf(&b, "Dominant expense category: %s\n", uc.DominantCategory)

	b.WriteString("\nVehicles:\n")
	for _, v := range uc.Vehicles {
		if v.TripCount == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s): %d trips, ₹%.2f earned, ₹%.2f spent, ₹%.2f net profit (₹%.2f/trip), %.2f km, mileage %.1f km/l (rated %.1f)\n",
			v.Name, v.Type, v.TripCount, v.TotalEarnings, v.TotalExpenses,
			v.NetProfit, v.AvgProfitPerTrip, v.TotalDistance, v.FuelEfficiency, v.RatedEfficiency)
	}
	fmt.Fprintf(&b, "Top performer: %s; worst performer: %s\n", uc.TopPerformer, uc.WorstPerformer)

	t := uc.Trends
	b.WriteString("\nVersus the preceding period of equal length:\n")
	fmt.Fprintf(&b, "- Profit: %+.1f%%\n", t.ProfitChange)
	fmt.Fprintf(&b, "- Expenses: %+.1f%%\n", t.ExpenseChange)
	fmt.Fprintf(&b, "- Earnings: %+.1f%%\n", t.EarningsChange)
	fmt.Fprintf(&b, "- Distance: %+.1f%%\n", t.DistanceChange)

	return Redact(b.String())
}

// BuildHistory renders the last limit prior messages as alternating turns for
// the completion request. The in-flight user message must not be in messages;
// the caller appends it separately.
func BuildHistory(messages []models.ChatMessage, limit int) []Turn {
	if limit <= 0 {
		limit = 5
	}
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		turns = append(turns, Turn{Role: role, Text: m.Content})
	}
	return turns
}
