package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/lifetable/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders report in the named format and writes it to w.
func GenerateReport(w io.Writer, report *domain.Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveBasis writes a basis as YAML, e.g. the example basis for a new user.
func SaveBasis(basis *domain.Basis, filename string) error {
	b, err := yaml.Marshal(basis)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
