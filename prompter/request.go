package prompter

// Request is a question waiting on a Response
type Request struct {
	Message string
	Text    bool
	Choices []string
}

func newTextRequest(message string) Request {
	return Request{
		Message: message,
		Text:    true,
	}
}

func newChoicesRequest(message string, choices []string) Request {
	return Request{
		Message: message,
		Choices: choices,
	}
}

// Response answers a Request. Choice is used for choice requests, Text for text requests.
type Response struct {
	Choice int
	Text   string
	Err    error
}
