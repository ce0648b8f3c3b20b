// Package orchestrator wires the form definition, the step validator, the
// wizard and the renderer registry behind a single entry point. Adapters (the
// HTTP server, the CLI) hand it the session they decoded from a request and
// get back the next session plus the rendered step.
package orchestrator
