package compare

import (
	"strings"

	"baliance.com/gooxml/document"
	"github.com/samber/lo"

	apperrors "audio2text/internal/app/errors"
)

// readDocx returns the body paragraphs of a Word document joined by spaces.
// Tables, headers and footers are not read.
func readDocx(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", apperrors.KindWrap(apperrors.ErrUnsupportedInput, err, "%s is not a readable .docx file", path)
	}
	paragraphs := lo.Map(doc.Paragraphs(), func(p document.Paragraph, _ int) string {
		var sb strings.Builder
		for _, r := range p.Runs() {
			sb.WriteString(r.Text())
		}
		return sb.String()
	})
	return strings.Join(paragraphs, " "), nil
}
