package forms

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
)

// failureMessage is sent to the user when a registration fails for any reason
// other than their input.
const failureMessage = "❌ エラーが発生しました。もう一度お試しください。"

var boardGameFooterTemplate = `{{ .Kind }} | 登録者: {{ .Username | default "不明" }}`

var mapFooterTemplate = `登録者: {{ .Username | default "不明" }}`

var successMsgTemplate = `✅ {{ .Subject }}の登録が完了しました！`

func parseTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New(
		"template",
	).Funcs(sprig.TxtFuncMap()).Parse(text)
	return tmpl, errors.Wrap(err, "error parsing template")
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	buffer := &bytes.Buffer{}
	err := tmpl.Execute(buffer, data)
	return buffer.String(), errors.Wrap(err, "error rendering template")
}

// renderSuccessMessage renders the acknowledgment for a registered subject.
func renderSuccessMessage(subject string) (string, error) {
	tmpl, err := parseTemplate(successMsgTemplate)
	if err != nil {
		return "", err
	}
	return render(tmpl, struct{ Subject string }{Subject: subject})
}
