// Package mapping resolves source column labels to canonical transaction
// fields. Resolution walks the fields in a fixed order and claims at most
// one header per field; a claimed header is never reconsidered for a
// later field. The date patterns are anchored tightly so that "Date
// valeur" falls through to valueDate instead of being swallowed by the
// generic date field.
package mapping

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

// Ordered per-field pattern lists (French, English, Portuguese). Headers
// are lowercased and trimmed before matching.
var fieldPatterns = map[model.Field][]*regexp.Regexp{
	model.FieldDate: compile(
		`^date$`,
		`^date (?:de )?l.?op[ée]ration$`,
		`^date op[ée]ration$`,
		`^date comptable$`,
		`^date mov\.?$`,
		`^data(?: mov\.?)?$`,
		`^transaction date$`,
		`^booking date$`,
		`^fecha$`,
	),
	model.FieldValueDate: compile(
		`valeur`,
		`^value date$`,
		`^data valor$`,
	),
	model.FieldAmount: compile(
		`montant`,
		`amount`,
		`importe`,
		`^valor$`,
		`^somme$`,
	),
	model.FieldBalance: compile(
		`solde`,
		`balance`,
		`saldo`,
	),
	model.FieldDescription: compile(
		`libell[ée]`,
		`desc`,
		`d[ée]signation`,
		`intitul[ée]`,
		`motif`,
		`nature`,
	),
	model.FieldReference: compile(
		`r[ée]f[ée]rence`,
		`^ref\.?$`,
		`pi[èe]ce`,
	),
	model.FieldAccountNumber: compile(
		`compte`,
		`account`,
		`iban`,
	),
}

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// Resolve produces the column mappings for the given headers. Explicitly
// configured mappings short-circuit header inspection entirely.
func Resolve(headers []string, cfg model.ImportConfig) []model.ColumnMapping {
	if len(cfg.Mappings) > 0 {
		return cfg.Mappings
	}

	claimed := make(map[string]bool, len(headers))
	var mappings []model.ColumnMapping
	for _, field := range model.Fields() {
		patterns := fieldPatterns[field]
		for _, header := range headers {
			if claimed[header] {
				continue
			}
			if matchesAny(header, patterns) {
				claimed[header] = true
				mappings = append(mappings, model.ColumnMapping{
					SourceColumn: header,
					TargetField:  field,
				})
				break
			}
		}
	}
	return mappings
}

func matchesAny(header string, patterns []*regexp.Regexp) bool {
	normalized := strings.ToLower(strings.TrimSpace(header))
	for _, re := range patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// ByField indexes mappings for lookup during normalization.
func ByField(mappings []model.ColumnMapping) map[model.Field]model.ColumnMapping {
	byField := make(map[model.Field]model.ColumnMapping, len(mappings))
	for _, m := range mappings {
		byField[m.TargetField] = m
	}
	return byField
}
