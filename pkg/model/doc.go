// Package model defines the wizard definition shared by validators and
// renderers: a FormModel made of ordered Steps, each owning a group of Fields.
// Validation rules use canonical identifiers (required, minLength/maxLength,
// pattern) with string parameters so the same definition can drive the rule
// engine, the generated OpenAPI schema and HTML attributes without drift.
package model
