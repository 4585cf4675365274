package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc() error = %v", err)
	}

	var parsed struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}

	for path, method := range map[string]string{
		"/login": "post", "/users": "post", "/users/{email}": "get",
		"/": "delete", "/{id}": "patch", "/{user_id}": "post",
	} {
		if _, ok := parsed.Paths[path][method]; !ok {
			t.Errorf("missing %s %s in doc", method, path)
		}
	}
}
