// Package crm is the domain action layer: one method per mutation/query.
// Each action validates input shape, performs its persistence operations,
// and returns a uniform success/failure envelope. Raw store errors are
// logged here and never reach a caller.
package crm

// Result is the envelope every mutation returns.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok() Result {
	return Result{Success: true}
}

func okMsg(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(msg string) Result {
	return Result{Success: false, Message: msg}
}

const msgMissingFields = "Missing required fields."
