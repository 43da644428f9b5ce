package store

import (
	"encoding/json"
	"fmt"
)

// JSON keys of a client record on disk.
const (
	keyName       = "name"
	keyAlias      = "alias"
	keyOrderCodes = "order codes"
)

// ClientRecord is a referring physician or clinic.
type ClientRecord struct {
	Name       string
	Alias      string
	OrderCodes string

	// extra holds keys this program does not model so that a save does not
	// drop fields somebody else put in the file.
	extra map[string]json.RawMessage
}

// merge copies the modelled fields of update over r, keeping r's extras.
func (r ClientRecord) merge(update ClientRecord) ClientRecord {
	r.Name = update.Name
	r.Alias = update.Alias
	r.OrderCodes = update.OrderCodes
	return r
}

// MarshalJSON implements json.Marshaler.
func (r ClientRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+3)
	for k, v := range r.extra {
		out[k] = v
	}
	out[keyName] = r.Name
	out[keyAlias] = r.Alias
	out[keyOrderCodes] = r.OrderCodes
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Missing keys decode as empty
// strings.
func (r *ClientRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		key string
		dst *string
	}{
		{keyName, &r.Name},
		{keyAlias, &r.Alias},
		{keyOrderCodes, &r.OrderCodes},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			*f.dst = ""
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("client field %q: %w", f.key, err)
		}
		delete(raw, f.key)
	}

	if len(raw) > 0 {
		r.extra = raw
	} else {
		r.extra = nil
	}
	return nil
}
