package room

// Response is a message sent to a connected client
type Response struct {
	Key     string      `json:"key"`
	Context string      `json:"context,omitempty"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK returns a success response for the given request context
func OK(ctx string) *Response {
	return &Response{
		Key:     "ok",
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Context: ctx,
		Value:   err.Error(),
	}
}
