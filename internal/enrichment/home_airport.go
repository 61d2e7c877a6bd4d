package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
)

// HomeAirportSource exposes the fixed departure airport of the pipeline.
// The value is read once per evaluation, not cached, so operators can
// repoint it between runs.
type HomeAirportSource interface {
	Airport(ctx context.Context) (string, error)
}

// FileHomeAirportSource reads the home airport from a single-value JSON
// document of the form {"airport": "SEA"}.
type FileHomeAirportSource struct {
	path string
}

// NewFileHomeAirportSource creates the file-backed source.
func NewFileHomeAirportSource(path string) *FileHomeAirportSource {
	return &FileHomeAirportSource{path: path}
}

// Airport implements HomeAirportSource.
func (s *FileHomeAirportSource) Airport(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", exception.New(componentName, fmt.Sprintf("failed to read home airport document '%s'", s.path), err, false)
	}

	var doc struct {
		Airport string `json:"airport"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", exception.New(componentName, fmt.Sprintf("malformed home airport document '%s'", s.path), err, false)
	}
	airport := strings.ToUpper(strings.TrimSpace(doc.Airport))
	if airport == "" {
		return "", exception.New(componentName, fmt.Sprintf("home airport document '%s' has no 'airport' value", s.path), nil, false)
	}
	return airport, nil
}

// StaticHomeAirportSource returns a fixed value. It backs tests and
// deployments that configure the airport inline.
type StaticHomeAirportSource string

// Airport implements HomeAirportSource.
func (s StaticHomeAirportSource) Airport(context.Context) (string, error) {
	airport := strings.ToUpper(strings.TrimSpace(string(s)))
	if airport == "" {
		return "", exception.New(componentName, "no home airport configured", nil, false)
	}
	return airport, nil
}
