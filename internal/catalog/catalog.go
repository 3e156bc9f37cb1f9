// Package catalog is the storefront side: a seeded plan list and the
// messaging deep-link handoff. Purchase intent never touches the backend;
// the link is fire-and-forget.
package catalog

import (
	"fmt"
	"net/url"

	"betpool/internal/domain"
)

// Plan categories
const (
	CategoryInternet = "INTERNET"
	CategoryIPTV     = "IPTV"
	CategoryCombo    = "COMBO"
)

// Handoff actions
const (
	ActionHire  = "HIRE"
	ActionRenew = "RENEW"
)

// Spec is one label/value line on a plan card.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Plan is a storefront subscription plan.
type Plan struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	SubCategory string  `json:"subCategory,omitempty"`
	Price       float64 `json:"price"`
	Period      string  `json:"period"`
	Specs       []Spec  `json:"specs"`
	IsPopular   bool    `json:"isPopular,omitempty"`
	Color       string  `json:"color"`
}

// Catalog serves the plan list and builds handoff links.
type Catalog struct {
	plans    []Plan
	whatsapp string
}

// New builds the seeded catalog. whatsapp is the destination number for
// deep links, digits only with country code.
func New(whatsapp string) *Catalog {
	return &Catalog{plans: seedPlans(), whatsapp: whatsapp}
}

// Plans returns plans filtered by category; empty category returns all.
func (c *Catalog) Plans(category string) []Plan {
	if category == "" {
		out := make([]Plan, len(c.plans))
		copy(out, c.plans)
		return out
	}
	var out []Plan
	for _, p := range c.plans {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the plan with the given id.
func (c *Catalog) Find(id string) (Plan, error) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, domain.ErrNotFound
}

// HandoffURL builds the wa.me link with the pre-filled purchase message.
// No response is awaited; opening the link is the whole interaction.
func (c *Catalog) HandoffURL(plan Plan, action string) string {
	verb := "assinar"
	if action == ActionRenew {
		verb = "RENOVAR"
	}
	text := fmt.Sprintf("Olá! Quero %s o plano %q (R$ %.2f)", verb, plan.Title, plan.Price)
	return "https://wa.me/" + c.whatsapp + "?text=" + url.QueryEscape(text)
}

func seedPlans() []Plan {
	return []Plan{
		{ID: "int-200", Title: "Fibra Start 200 Mbps", Category: CategoryInternet, Price: 70.00, Period: "MENSAL", Color: "#6366f1",
			Specs: []Spec{{"Velocidade", "200 Mbps"}, {"Upload", "100 Mbps"}, {"Wi-Fi", "Dual Band"}}},
		{ID: "int-300", Title: "Fibra Home 300 Mbps", Category: CategoryInternet, Price: 80.00, Period: "MENSAL", Color: "#6366f1",
			Specs: []Spec{{"Velocidade", "300 Mbps"}, {"Upload", "150 Mbps"}, {"Wi-Fi", "Dual Band"}}},
		{ID: "int-400", Title: "Fibra Plus 400 Mbps", Category: CategoryInternet, Price: 90.00, Period: "MENSAL", Color: "#6366f1", IsPopular: true,
			Specs: []Spec{{"Velocidade", "400 Mbps"}, {"Upload", "200 Mbps"}, {"Wi-Fi", "Dual Band"}}},
		{ID: "int-600", Title: "Fibra Gamer 600 Mbps", Category: CategoryInternet, Price: 100.00, Period: "MENSAL", Color: "#6366f1",
			Specs: []Spec{{"Velocidade", "600 Mbps"}, {"Upload", "300 Mbps"}, {"Wi-Fi", "Wi-Fi 6"}}},
		{ID: "iptv-tv1", Title: "IPTV Smart TV - 1 Mês", Category: CategoryIPTV, SubCategory: "Smart TV", Price: 40.00, Period: "MENSAL", Color: "#a855f7",
			Specs: []Spec{{"Telas", "2 Conexões"}, {"Canais", "18k+ Mundiais"}, {"Qualidade", "4K/UHD"}}},
		{ID: "iptv-tv3", Title: "IPTV Smart TV - 3 Meses", Category: CategoryIPTV, SubCategory: "Smart TV", Price: 105.00, Period: "3 MESES", Color: "#a855f7", IsPopular: true,
			Specs: []Spec{{"Telas", "2 Conexões"}, {"Economia", "R$ 15,00"}, {"VOD", "Filmes & Séries"}}},
		{ID: "iptv-tv6", Title: "IPTV Smart TV - 6 Meses", Category: CategoryIPTV, SubCategory: "Smart TV", Price: 177.00, Period: "6 MESES", Color: "#a855f7",
			Specs: []Spec{{"Telas", "2 Conexões"}, {"Economia", "R$ 63,00"}, {"Status", "Premium VIP"}}},
		{ID: "iptv-sm", Title: "IPTV Smartphone", Category: CategoryCombo, SubCategory: "Smartphone", Price: 25.00, Period: "MENSAL", Color: "#ec4899",
			Specs: []Spec{{"Dispositivo", "Celular/Tablet"}, {"Telas", "1 Acesso"}, {"Qualidade", "HD/Full HD"}}},
	}
}
