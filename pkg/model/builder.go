package model

import "strconv"

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldWebsite  = "website"
	FieldGithub   = "github"
)

// EmailPattern is intentionally permissive: something, an @, something. The
// class excludes the full ECMAScript whitespace set, which RE2's \s does not
// cover (vertical tab, Unicode separators, BOM).
const EmailPattern = `^[^\s\v\p{Z}\x{FEFF}]+@[^\s\v\p{Z}\x{FEFF}]+$`

// DefaultForm returns the three-step stepper definition: account credentials,
// profile, and links.
func DefaultForm() FormModel {
	return FormModel{
		ID:     "stepper",
		Title:  "Stepper Form",
		Action: "/",
		Method: "POST",
		Steps: []Step{
			{
				Index: 0,
				Title: "First Step",
				Fields: []Field{
					textField(FieldUsername, "Username", FieldTypeText, false,
						Required("Username is required")),
					textField(FieldPassword, "Password", FieldTypePassword, false,
						MinLength(6, "Password must include at least 6 characters")),
				},
			},
			{
				Index: 1,
				Title: "Second Step",
				Fields: []Field{
					textField(FieldName, "Name", FieldTypeText, true,
						Required("Name is required")),
					textField(FieldEmail, "Email", FieldTypeEmail, false,
						Pattern(EmailPattern, "Email is invalid")),
				},
			},
			{
				Index: 2,
				Title: "Last Step",
				Fields: []Field{
					textField(FieldWebsite, "Website", FieldTypeText, true,
						Required("Website is required")),
					textField(FieldGithub, "Github", FieldTypeText, false,
						Required("Github is required")),
				},
			},
		},
	}
}

// Required builds a rule failing on empty values.
func Required(message string) ValidationRule {
	return ValidationRule{Kind: ValidationRuleRequired, Message: message}
}

// MinLength builds a rule failing when the value is shorter than n.
func MinLength(n int, message string) ValidationRule {
	return ValidationRule{
		Kind:    ValidationRuleMinLength,
		Params:  map[string]string{"value": strconv.Itoa(n)},
		Message: message,
	}
}

// MaxLength builds a rule failing when the value is longer than n.
func MaxLength(n int, message string) ValidationRule {
	return ValidationRule{
		Kind:    ValidationRuleMaxLength,
		Params:  map[string]string{"value": strconv.Itoa(n)},
		Message: message,
	}
}

// Pattern builds a rule failing when the value does not match expr.
func Pattern(expr, message string) ValidationRule {
	return ValidationRule{
		Kind:    ValidationRulePattern,
		Params:  map[string]string{"pattern": expr},
		Message: message,
	}
}

func textField(name, label string, typ FieldType, autofocus bool, rules ...ValidationRule) Field {
	field := Field{
		Name:        name,
		Type:        typ,
		Label:       label,
		Placeholder: label,
		Autofocus:   autofocus,
		Validations: rules,
	}
	for _, rule := range rules {
		if rule.Kind == ValidationRuleRequired {
			field.Required = true
		}
	}
	return field
}
