// Package reimbursement holds the pure money and region rules for travel allowances.
package reimbursement

import (
	"strings"
	"unicode"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GroupOneCities are destinations paid with the LOCAL rate table, in folded form.
var GroupOneCities = []string{"florianopolis", "curitiba"}

// CapitalCities are the state capitals, used to recognise far destinations.
var CapitalCities = []string{
	"Aracaju", "Belém", "Belo Horizonte", "Boa Vista", "Brasília", "Campo Grande",
	"Cuiabá", "Fortaleza", "Goiânia", "João Pessoa", "Macapá", "Maceió", "Manaus",
	"Natal", "Palmas", "Porto Alegre", "Porto Velho", "Recife", "Rio Branco",
	"Rio de Janeiro", "Salvador", "São Luís", "São Paulo", "Teresina", "Vitória",
}

// RateTables maps a region to the multiplier, in reference units, of each allowance tier.
var RateTables = map[domain.Region]map[domain.AllowanceKind]decimal.Decimal{
	domain.RegionLocal: {
		domain.AllowanceWithOvernight:    decimal.NewFromInt(100),
		domain.AllowanceWithoutOvernight: decimal.NewFromInt(40),
		domain.AllowanceHalfDay:          decimal.NewFromInt(20),
	},
	domain.RegionOther: {
		domain.AllowanceWithOvernight:    decimal.NewFromInt(200),
		domain.AllowanceWithoutOvernight: decimal.NewFromInt(80),
		domain.AllowanceHalfDay:          decimal.NewFromInt(20),
	},
}

var (
	groupOneSet = foldedSet(GroupOneCities)
	capitalSet  = foldedSet(CapitalCities)
)

func foldedSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[FoldCityName(n)] = struct{}{}
	}
	return set
}

// FoldCityName lowercases name and strips diacritics and surrounding spaces.
func FoldCityName(name string) string {
	// transform.Chain is stateful, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// LeadingCity returns the text before the first comma of a destination.
func LeadingCity(destination string) string {
	city, _, _ := strings.Cut(destination, ",")
	return city
}

// InferRegion classifies a free-text destination such as "Florianópolis, SC".
// Group-one cities are LOCAL, capitals are OTHER and anything unknown is LOCAL.
func InferRegion(destination string) domain.Region {
	city := FoldCityName(LeadingCity(destination))
	if _, ok := groupOneSet[city]; ok {
		return domain.RegionLocal
	}
	if _, ok := capitalSet[city]; ok {
		return domain.RegionOther
	}
	return domain.RegionLocal
}

// ResolveRegion prefers a valid explicit region over inference.
func ResolveRegion(destination string, explicit *domain.Region) domain.Region {
	if explicit != nil && explicit.IsValid() {
		return *explicit
	}
	return InferRegion(destination)
}

// Multiplier returns the reference-unit multiplier for kind in region.
func Multiplier(region domain.Region, kind domain.AllowanceKind) decimal.Decimal {
	table, ok := RateTables[region]
	if !ok {
		return decimal.Zero
	}
	return table[kind]
}
