package billing

import (
	"pulse-metrics/domain/model"
	"pulse-metrics/infrastructure/configuration"
)

// orPlaceholder keeps a placeholder price id when the configuration carries
// none so local demo checkouts still resolve a plan
func orPlaceholder(priceID, fallback string) string {
	if priceID != "" {
		return priceID
	}
	return fallback
}

type priceTable struct {
	byPlan  map[string]map[string]string // plan -> period -> price id
	byPrice map[string]string            // price id -> plan
}

func loadPriceTable(prices configuration.StripePrices) *priceTable {
	ids := map[string]map[string]string{
		model.PlanCreator: {
			"monthly": orPlaceholder(prices.CreatorMonthly, "price_creator_monthly"),
			"yearly":  orPlaceholder(prices.CreatorYearly, "price_creator_yearly"),
		},
		model.PlanPro: {
			"monthly": orPlaceholder(prices.ProMonthly, "price_pro_monthly"),
			"yearly":  orPlaceholder(prices.ProYearly, "price_pro_yearly"),
		},
		model.PlanAgency: {
			"monthly": orPlaceholder(prices.AgencyMonthly, "price_agency_monthly"),
			"yearly":  orPlaceholder(prices.AgencyYearly, "price_agency_yearly"),
		},
	}
	table := &priceTable{byPlan: ids, byPrice: make(map[string]string)}
	for plan, periods := range ids {
		for _, priceID := range periods {
			table.byPrice[priceID] = plan
		}
	}
	return table
}

// planForPrice maps a provider price id to its plan, free when unknown
func (t *priceTable) planForPrice(priceID string) string {
	if plan, ok := t.byPrice[priceID]; ok {
		return plan
	}
	return model.PlanFree
}

func (t *priceTable) priceIDFor(plan, period string) string {
	periods, ok := t.byPlan[plan]
	if !ok {
		return ""
	}
	return periods[period]
}

// Tiers returns the sellable plans for the pricing page
func (c *Client) Tiers() []model.PricingTier {
	return []model.PricingTier{
		{
			ID:          model.PlanFree,
			Name:        "Free",
			Description: "Get started with basic analytics",
			Price:       model.TierPrice{Monthly: 0, Yearly: 0},
		},
		{
			ID:          model.PlanCreator,
			Name:        "Creator",
			Description: "For growing creators",
			Price:       model.TierPrice{Monthly: 15, Yearly: 144},
			PriceIDs:    c.prices.byPlan[model.PlanCreator],
		},
		{
			ID:          model.PlanPro,
			Name:        "Pro",
			Description: "For professional creators and small teams",
			Price:       model.TierPrice{Monthly: 39, Yearly: 348},
			PriceIDs:    c.prices.byPlan[model.PlanPro],
			Popular:     true,
		},
		{
			ID:          model.PlanAgency,
			Name:        "Agency",
			Description: "For agencies managing multiple accounts",
			Price:       model.TierPrice{Monthly: 99, Yearly: 948},
			PriceIDs:    c.prices.byPlan[model.PlanAgency],
		},
	}
}
