package response

// APIResponse is the envelope shared by the dashboard APIs. Endpoint payloads
// are embedded next to Success so the JSON stays flat, e.g.
// {"success": true, "count": 2, "subscriptions": [...]}.
type APIResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ListResponse carries a counted collection under a caller-chosen key.
type ListResponse map[string]any

// Error returns a failure envelope carrying msg.
func Error(msg string) APIResponse { return APIResponse{Success: false, Error: msg} }

// List builds {"success": true, "count": len(items), key: items}.
func List[T any](key string, items []T) ListResponse {
	if items == nil {
		items = []T{}
	}
	return ListResponse{"success": true, "count": len(items), key: items}
}

// Item builds {"success": true, key: item}.
func Item[T any](key string, item T) ListResponse {
	return ListResponse{"success": true, key: item}
}
