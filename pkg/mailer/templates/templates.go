package templates

import (
	"bytes"
	"fmt"
	"html/template"
	textTemplate "text/template"
)

// Welcome is the only template the API currently enqueues.
const Welcome = "welcome"

var subjects = map[string]string{
	Welcome: "Welcome to Noteplus",
}

var textBodies = map[string]string{
	Welcome: "Hi {{.Name}},\n\nYour Noteplus account is ready. Log in and start taking notes.\n",
}

var htmlBodies = map[string]string{
	Welcome: `<html><body>
<p>Hi {{.Name}},</p>
<p>Your Noteplus account is ready. Log in and start taking notes.</p>
</body></html>`,
}

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	tt, err := textTemplate.New(name).Parse(textBodies[name])
	if err != nil {
		return "", "", "", err
	}
	var tb bytes.Buffer
	if err := tt.Execute(&tb, data); err != nil {
		return "", "", "", err
	}

	ht, err := template.New(name).Parse(htmlBodies[name])
	if err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err := ht.Execute(&hb, data); err != nil {
		return "", "", "", err
	}

	return subject, tb.String(), hb.String(), nil
}
