// Package uploads decides which uploaded files the prompt tester accepts. Only the file
// name and size are ever kept; content is never opened.
package uploads

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dustin/go-humanize"
)

// Policy matches upload names against an extension allow-list.
type Policy struct {
	extensions []string
	pattern    string
}

func NewPolicy(extensions []string) (*Policy, error) {
	if len(extensions) == 0 {
		return nil, fmt.Errorf("upload policy needs at least one extension")
	}

	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		normalized = append(normalized, strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")))
	}

	pattern := "*.{" + strings.Join(normalized, ",") + "}"
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid upload pattern %q", pattern)
	}

	return &Policy{extensions: normalized, pattern: pattern}, nil
}

// Pattern is the glob the policy matches names against, e.g. "*.{txt,docx,pdf}".
func (p *Policy) Pattern() string {
	return p.pattern
}

// Accept is the value of the HTML file input accept attribute.
func (p *Policy) Accept() string {
	accept := make([]string, 0, len(p.extensions))
	for _, ext := range p.extensions {
		accept = append(accept, "."+ext)
	}

	return strings.Join(accept, ",")
}

// Check returns ErrUnsupportedFile unless name carries an allowed extension.
func (p *Policy) Check(name string) error {
	base := strings.ToLower(path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")))
	if base == "" || base == "." || base == "/" {
		return fmt.Errorf("%w: empty file name", services.ErrUnsupportedFile)
	}

	matched, err := doublestar.Match(p.pattern, base)
	if err != nil {
		return fmt.Errorf("failed to match upload name: %w", err)
	}

	if !matched {
		return fmt.Errorf("%w: %s (allowed: %s)", services.ErrUnsupportedFile, name, p.Accept())
	}

	return nil
}

// AcceptFile records an upload by name and size.
func (p *Policy) AcceptFile(name string, size int64) (models.UploadedFile, error) {
	if err := p.Check(name); err != nil {
		return models.UploadedFile{}, err
	}

	return models.UploadedFile{Name: path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")), Size: max(size, 0)}, nil
}

// HumanSize renders a byte count for display, e.g. "12 kB".
func HumanSize(size int64) string {
	return humanize.Bytes(uint64(max(size, 0)))
}
