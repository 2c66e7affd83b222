package utils

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const redacted = "***"

// Mask transforma um valor em vez de escondê-lo por completo
type Mask func(string) string

// RedactJSON substitui os valores das chaves informadas (em qualquer nível) por "***".
// Corpos que não são JSON são retornados sem alteração.
func RedactJSON(body []byte, keys ...string) string {
	return MaskJSON(body, nil, keys...)
}

// MaskJSON é RedactJSON com máscaras por chave. Valores não textuais de chaves mascaradas viram "***".
func MaskJSON(body []byte, masks map[string]Mask, keys ...string) string {
	if len(body) == 0 {
		return ""
	}

	var in any
	if err := json.Unmarshal(body, &in); err != nil {
		return string(body)
	}

	sensitive := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		sensitive[strings.ToLower(k)] = struct{}{}
	}
	lowered := make(map[string]Mask, len(masks))
	for k, m := range masks {
		lowered[strings.ToLower(k)] = m
	}

	out, err := json.Marshal(redact(in, sensitive, lowered))
	if err != nil {
		return string(body)
	}
	return string(out)
}

func redact(v any, sensitive map[string]struct{}, masks map[string]Mask) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			key := strings.ToLower(k)
			if _, ok := sensitive[key]; ok {
				val[k] = redacted
				continue
			}
			if mask, ok := masks[key]; ok {
				if s, isString := inner.(string); isString {
					val[k] = mask(s)
				} else {
					val[k] = redacted
				}
				continue
			}
			val[k] = redact(inner, sensitive, masks)
		}
		return val
	case []any:
		for i := range val {
			val[i] = redact(val[i], sensitive, masks)
		}
		return val
	default:
		return v
	}
}
