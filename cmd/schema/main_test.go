package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomz197/dodge/internal/web"
)

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schemas", "client.schema.json")
	schema := buildSchema(new(web.ClientMessage), "title", "desc")
	if err := writeSchema(out, schema); err != nil {
		t.Fatalf("writeSchema: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc["title"] != "title" {
		t.Fatalf("title = %v", doc["title"])
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}
