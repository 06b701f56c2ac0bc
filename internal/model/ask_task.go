package model

// AskTask is the queue payload for one AI response. One task owns exactly
// one placeholder message row; the worker that consumes it is the row's only
// writer until the row is marked complete.
type AskTask struct {
	MessageID uint   `json:"message_id"`
	PageID    uint   `json:"page_id"`
	Prompt    string `json:"prompt"`
	Sender    string `json:"sender"`
}
