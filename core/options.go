package reconcile

// EngineOption configures an [Engine] at construction time.
type EngineOption func(*Engine)

// WithGateway injects the outbound send capability. The engine never
// touches the transport directly; everything it emits goes through the
// gateway, and a missing gateway only surfaces as reported send
// failures.
func WithGateway(gateway Gateway) EngineOption {
	return func(e *Engine) { e.gateway = gateway }
}

// WithTools replaces the local action table declared to the remote
// model and executed by the dispatcher.
func WithTools(tools ...Tool) EngineOption {
	return func(e *Engine) { e.dispatcher.setTools(tools...) }
}

// WithNavigator appends the default navigation tools bound to the given
// capability.
func WithNavigator(navigator Navigator) EngineOption {
	return func(e *Engine) { e.dispatcher.appendTools(NavigationTools(navigator)...) }
}

// WithInstructions overrides the system instruction string sent in the
// session configuration.
func WithInstructions(instructions string) EngineOption {
	return func(e *Engine) { e.instructions = instructions }
}

// WithTranscriptionModel selects the speech-to-text model configured
// for the session.
func WithTranscriptionModel(model string) EngineOption {
	return func(e *Engine) { e.transcriptionModel = model }
}

// WithMaxResponseTokens caps the remote model's response length.
func WithMaxResponseTokens(maxTokens int) EngineOption {
	return func(e *Engine) { e.maxResponseTokens = maxTokens }
}

// WithTranscriptUpdatedCallback registers a callback invoked with a
// fresh ledger snapshot (newest turn first) after every mutation. The
// callback runs inline on the event path and should not block.
func WithTranscriptUpdatedCallback(callback func(turns []Turn)) EngineOption {
	return func(e *Engine) { e.onTranscriptUpdated = callback }
}
