package processor

// Run statuses reported to callers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one processing run, shared by the HTTP and CLI
// surfaces.
type Result struct {
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	Warnings    []string          `json:"warnings,omitempty"`
	OutputPaths map[string]string `json:"outputPaths,omitempty"`
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func errorResult(message string) Result {
	return Result{Status: StatusError, Message: message}
}
