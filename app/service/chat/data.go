package chat

// Message is the stable history format exchanged with the UI. It round-trips
// through JSON unchanged so clients can persist and redisplay it.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Turn is the outcome of one user message: the answer text plus the full
// updated history, tool round-trips included.
type Turn struct {
	Reply   string    `json:"reply"`
	History []Message `json:"history"`
}
