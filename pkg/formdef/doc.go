// Package formdef loads copy overlays for the wizard definition. An overlay
// is a JSON or YAML document that renames steps, relabels fields and rewrites
// rule messages without touching the field groups or the rules themselves:
//
//	form:
//	  title: Create your account
//	steps:
//	  0: {title: Credentials}
//	fields:
//	  username:
//	    label: Handle
//	    description: Shown on your <strong>public</strong> profile.
//	    messages:
//	      required: Pick a handle
//
// Descriptions may carry inline HTML; it is sanitized before it reaches a
// renderer.
package formdef
