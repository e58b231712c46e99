package api

// Envelope is the JSON wrapper returned by most endpoints:
//
//	{"status": "true"|"false", "data": <any>, "error": <string|null>}
//
// Invariant: status is "false" exactly when error is non-null.
type Envelope struct {
	Status string  `json:"status"`
	Data   any     `json:"data"`
	Error  *string `json:"error"`
}

// OK wraps a successful payload. Data may be nil; it is serialised as null.
func OK(data any) Envelope {
	return Envelope{Status: "true", Data: data}
}

// Fail wraps an error message. Data is an empty list, matching the shape
// callers get on the success path before any payload is assigned.
func Fail(message string) Envelope {
	return Envelope{Status: "false", Data: []any{}, Error: &message}
}
