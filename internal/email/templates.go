package email

import (
	"bytes"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<html>
<body>
	<h2>Confirm your email</h2>
	<p>Thanks for registering. Click the link below to verify your email address:</p>
	<p><a href="{{.ActionURL}}">Verify email</a></p>
	<p>If you did not create an account, ignore this message.</p>
</body>
</html>`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<html>
<body>
	<h2>Reset your password</h2>
	<p>A password reset was requested for your account. The link is valid for one hour:</p>
	<p><a href="{{.ActionURL}}">Reset password</a></p>
	<p>If you did not request this, ignore this message.</p>
</body>
</html>`))

type templateData struct {
	ActionURL string
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
