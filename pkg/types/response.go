package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ViewEnvelope names the page a client should render together with its data.
type ViewEnvelope struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
