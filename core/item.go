package core

// Item is the host's generic unit of data flowing between workflow steps.
// The payload is a single JSON object.
type Item struct {
	JSON map[string]any `json:"json"`
}

// WrapPayloads converts raw payloads into items, preserving order. Hosts
// usually provide their own wrapper through the execute context to attach
// run metadata; this is the plain fallback.
func WrapPayloads(payloads []map[string]any) []Item {
	items := make([]Item, len(payloads))
	for i, payload := range payloads {
		items[i] = Item{JSON: payload}
	}

	return items
}
