package output

import (
	"encoding/json"

	"github.com/boardlens/boardlens/internal/core"
)

// JSONFormatter renders a resolution as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatResolution renders the resolution.
func (f *JSONFormatter) FormatResolution(res *core.Resolution) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent {
		data, err = json.MarshalIndent(res, "", "  ")
	} else {
		data, err = json.Marshal(res)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
