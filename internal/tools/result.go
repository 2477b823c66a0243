package tools

// Content is one block of a tool result. Kind is currently always "text".
type Content struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

// Result is the uniform envelope produced for every invocation, success or
// failure. When IsError is set the payload is a human-readable diagnostic,
// not structured data.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"error"`
}

// Text returns the concatenated text payload of the result.
func (r Result) Text() string {
	var s string
	for _, c := range r.Content {
		s += c.Payload
	}
	return s
}

func textResult(payload string) Result {
	return Result{Content: []Content{{Kind: "text", Payload: payload}}}
}

func errorResult(msg string) Result {
	return Result{Content: []Content{{Kind: "text", Payload: "Error: " + msg}}, IsError: true}
}
