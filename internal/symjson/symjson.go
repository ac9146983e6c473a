// Package symjson offers optional, debug-only JSON projection of a
// solved model or witness, built on github.com/tidwall/sjson (encode)
// and github.com/tidwall/gjson (readback), both carried from the
// teacher's own dependency list. No schema is persisted or versioned:
// this is strictly an ergonomic dump for logging and golden-file tests,
// never part of the solving contract itself.
package symjson

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/symexpr"
)

// ExportModel renders a solver.Model as a JSON object mapping each
// hole's Name to a nested object {"value": <bound value's String()>,
// "type": <hole's symtype.Type>}. Holes the model left unbound are
// omitted.
func ExportModel(model *solver.Model, holes []*symexpr.Arbitrary) (string, error) {
	doc := "{}"
	for _, h := range holes {
		v, ok := model.ModelGet(h)
		if !ok {
			continue
		}
		var err error
		doc, err = sjson.Set(doc, jsonPath(h.Name)+".value", v.String())
		if err != nil {
			return "", fmt.Errorf("symjson: export %s: %w", h.Name, err)
		}
		doc, err = sjson.Set(doc, jsonPath(h.Name)+".type", h.Type().String())
		if err != nil {
			return "", fmt.Errorf("symjson: export %s.type: %w", h.Name, err)
		}
	}
	return doc, nil
}

// jsonPath escapes the dots gen.Generate's hole names already contain
// (e.g. "arg.field.value") so sjson treats the whole name as one key
// rather than a nested path.
func jsonPath(name string) string {
	return strings.ReplaceAll(name, ".", `\.`)
}

// Field reads one dotted path back out of an exported document, for
// tests/log lines that only care about a single witness value.
func Field(doc, path string) string {
	return gjson.Get(doc, path).String()
}
