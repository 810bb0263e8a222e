// Package share encodes loadouts to and from the opaque string exchanged in
// share links. The format is a version tag followed by base64url-encoded
// JSON: "a1.<payload>". The tag exists so the format can evolve without old
// links decoding into garbage.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drake/armory/loadout"
)

// version1 is the only payload version in circulation.
const version1 = "a1"

// Encode serializes a loadout into a share payload string.
func Encode(l loadout.Loadout) (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("encode loadout: %w", err)
	}
	return version1 + "." + base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a share payload back into a loadout. Errors carry a
// human-readable reason suitable for a notification body.
func Decode(payload string) (loadout.Loadout, error) {
	tag, body, ok := strings.Cut(payload, ".")
	if !ok || body == "" {
		return loadout.Loadout{}, fmt.Errorf("share payload is missing its version tag")
	}
	if tag != version1 {
		return loadout.Loadout{}, fmt.Errorf("unsupported share payload version %q", tag)
	}
	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return loadout.Loadout{}, fmt.Errorf("share payload is not valid base64: %v", err)
	}
	var l loadout.Loadout
	if err := json.Unmarshal(data, &l); err != nil {
		return loadout.Loadout{}, fmt.Errorf("share payload JSON: %v", err)
	}
	return l, nil
}
