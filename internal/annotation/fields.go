package annotation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/nao1215/savedindex/internal/model"
)

// Fields flattens a raw annotation object. Each field is defaulted
// independently, so a malformed field never hides the others.
func Fields(ann map[string]any) model.AnnotationFields {
	fields := model.AnnotationFields{
		Tags:   JoinList(ann["tags"]),
		Lenses: JoinList(ann["categories"]),
	}

	if notes, ok := ann["notes"].(string); ok {
		fields.Notes = notes
	}

	if flags, ok := ann["flags"].(map[string]any); ok {
		fields.Northstar = ParseTristate(flags["northstar"])
	}

	return fields
}

// JoinList flattens a list-or-string value into a comma separated string.
// Strings pass through unchanged; list items are stringified, trimmed and
// joined with "," skipping empty ones; null, empty and false-y values yield "".
func JoinList(value any) string {
	if isBlank(value) {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, ",")
	default:
		return stringify(v)
	}
}

// ParseTristate interprets a boolean-like value.
// Native booleans pass through. Strings and numbers are matched
// case-insensitively against true/1/yes/y and false/0/no/n.
// Everything else, including null, is Unknown.
func ParseTristate(value any) model.Tristate {
	var s string
	switch v := value.(type) {
	case bool:
		if v {
			return model.True
		}
		return model.False
	case string:
		s = v
	case float64:
		s = formatNumber(v)
	default:
		return model.Unknown
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return model.True
	case "false", "0", "no", "n":
		return model.False
	default:
		return model.Unknown
	}
}

// isBlank reports whether value carries nothing worth writing.
func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return boolString(v)
	case float64:
		return formatNumber(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func boolString(b bool) string {
	if b {
		return model.True.String()
	}
	return model.False.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
