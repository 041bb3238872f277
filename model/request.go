package model

// Document a generic JSON-like key/value payload
type Document map[string]interface{}

// GetString - string value by key, empty when absent or of another type
func (d Document) GetString(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// GetDocument - nested document by key, nil when absent
func (d Document) GetDocument(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]interface{}:
		return Document(v)
	}
	return nil
}

// GetStringSlice - list of strings by key; tolerates []interface{} as
// produced by json decoding
func (d Document) GetStringSlice(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []interface{}:
		ret := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				ret = append(ret, s)
			}
		}
		return ret
	}
	return nil
}

// Session identifies the calling user and their device
type Session struct {
	UserID   string `json:"userID"`
	DeviceID string `json:"deviceID"`
}

// RequestInfo - the transport-independent request shape the service core
// operates on; the cancellation signal travels as a context.Context alongside
type RequestInfo struct {
	Verb                  string            `json:"verb"`
	ObjectIdentity        string            `json:"objectIdentity"`
	Session               Session           `json:"session"`
	IsSystemAdministrator bool              `json:"isSystemAdministrator"`
	Body                  Document          `json:"body,omitempty"`
	Extra                 map[string]string `json:"extra,omitempty"`
}

// GetExtra - extra value by key, empty when no extras were supplied
func (r *RequestInfo) GetExtra(key string) string {
	if r.Extra == nil {
		return ""
	}
	return r.Extra[key]
}
