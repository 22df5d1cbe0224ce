// Package getsafe reads loosely-typed JSON payloads without panicking on
// missing keys or unexpected types.
package getsafe

func String(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Int(payload map[string]any, key string) int {
	if v, ok := payload[key]; ok {
		// JSON numbers decode as float64.
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return 0
}
