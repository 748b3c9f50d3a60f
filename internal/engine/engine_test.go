package engine

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	p, err := NewFileStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return p
}

func TestFileStore_InsertGet(t *testing.T) {
	p := newTestStore(t)
	rec := Record{"regId": "EMP0000001", "name": "Ada", "age": json.Number("36")}

	if err := p.Insert("employee", "EMP0000001", rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(p.DataDir, "employee", "EMP0000001.json")); err != nil {
		t.Fatalf("Record file was not created: %v", err)
	}

	got, err := p.Get("employee", "EMP0000001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("Expected %v, got %v", rec, got)
	}
}

func TestFileStore_InsertDuplicateKeepsContent(t *testing.T) {
	p := newTestStore(t)
	p.Insert("employee", "EMP0000001", Record{"name": "first"})

	err := p.Insert("employee", "EMP0000001", Record{"name": "second"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}
	if err.Error() != "Employee EMP0000001 already exists." {
		t.Errorf("Unexpected message %q", err.Error())
	}

	got, _ := p.Get("employee", "EMP0000001")
	if got["name"] != "first" {
		t.Errorf("Existing record was altered: %v", got)
	}
}

func TestFileStore_UpdateShallowMerge(t *testing.T) {
	p := newTestStore(t)
	p.Insert("employee", "EMP0000001", Record{
		"a":    json.Number("0"),
		"b":    json.Number("2"),
		"addr": map[string]any{"city": "Pune", "zip": "411001"},
	})

	merged, err := p.Update("employee", "EMP0000001", Record{
		"a":    json.Number("1"),
		"addr": map[string]any{"city": "Delhi"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := Record{
		"a":    json.Number("1"),
		"b":    json.Number("2"),
		"addr": map[string]any{"city": "Delhi"},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("Expected %v, got %v", want, merged)
	}

	got, _ := p.Get("employee", "EMP0000001")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Persisted %v, want %v", got, want)
	}
}

func TestFileStore_NotFound(t *testing.T) {
	p := newTestStore(t)

	if _, err := p.Update("employee", "EMP0000009", Record{"a": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := p.Delete("employee", "EMP0000009"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
	_, err := p.Get("employee", "EMP0000009")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if err.Error() != "Employee EMP0000009 not found." {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestFileStore_RejectsPathEscape(t *testing.T) {
	p := newTestStore(t)

	if _, err := p.Get("employee", "../secret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for escaping id, got %v", err)
	}
	if err := p.Insert("employee", "../secret", Record{}); err == nil {
		t.Error("Insert with escaping id should fail")
	}
}

func TestFileStore_DeleteAndGetAll(t *testing.T) {
	p := newTestStore(t)

	all, err := p.GetAll("employee")
	if err != nil || len(all) != 0 {
		t.Fatalf("Expected empty namespace, got %v, %v", all, err)
	}

	p.Insert("employee", "EMP0000001", Record{"regId": "EMP0000001"})
	p.Insert("employee", "EMP0000002", Record{"regId": "EMP0000002"})
	os.WriteFile(filepath.Join(p.DataDir, "employee", ".hidden.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(p.DataDir, "employee", "EMP0000003.json.tmp"), []byte("{"), 0644)

	if err := p.Delete("employee", "EMP0000001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if p.exists("employee", "EMP0000001") {
		t.Error("Record should be gone after delete")
	}

	all, err = p.GetAll("employee")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 || all[0]["regId"] != "EMP0000002" {
		t.Errorf("Unexpected records: %v", all)
	}
}

func TestFileStore_GetAllCorruptUnit(t *testing.T) {
	p := newTestStore(t)
	os.MkdirAll(filepath.Join(p.DataDir, "employee"), 0755)
	os.WriteFile(filepath.Join(p.DataDir, "employee", "EMP0000001.json"), []byte("[1,2]"), 0644)

	if _, err := p.GetAll("employee"); err == nil {
		t.Error("Expected error for non-object unit")
	}
}

func TestDecodeRecord_KeepsNumberLiterals(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"i": 3, "f": 3.0, "nested": {"n": 1e2}}`))
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if rec["i"] != json.Number("3") || rec["f"] != json.Number("3.0") {
		t.Errorf("Numbers were not preserved: %#v", rec)
	}

	out, _ := EncodeRecord(rec)
	back, _ := DecodeRecord(out)
	if !reflect.DeepEqual(rec, back) {
		t.Errorf("Encode/decode changed record: %v vs %v", rec, back)
	}

	if _, err := DecodeRecord([]byte(`"text"`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("Expected ErrNotObject, got %v", err)
	}
}

func TestDecodeRecord_RejectsTrailingData(t *testing.T) {
	for _, body := range []string{
		`{"name": "A"} {"junk": 1}`,
		`{"name": "A"} junk`,
		`{"name": "A"}]`,
	} {
		if _, err := DecodeRecord([]byte(body)); err == nil {
			t.Errorf("%s: expected an error", body)
		}
	}

	if _, err := DecodeRecord([]byte("{\"name\": \"A\"}\n  ")); err != nil {
		t.Errorf("Trailing whitespace should be accepted, got %v", err)
	}
}

func TestAllocator_Sequence(t *testing.T) {
	a := NewAllocator("EMP")
	if a.Last() != "EMP0000000" {
		t.Fatalf("Unexpected zero id %s", a.Last())
	}

	for _, want := range []string{"EMP0000001", "EMP0000002", "EMP0000003"} {
		got, err := a.Allocate()
		if err != nil {
			t.Fatalf("Allocate failed: %v", err)
		}
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	}
}

func TestAllocator_Seed(t *testing.T) {
	a := NewAllocator("EMP")
	if err := a.Seed("EMP0000005"); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	got, _ := a.Allocate()
	if got != "EMP0000006" {
		t.Errorf("Expected EMP0000006, got %s", got)
	}

	for _, bad := range []string{"EMP5", "XYZ0000001", "EMP00000a1", ""} {
		if err := a.Seed(bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Seed(%q): expected ErrInvalidID, got %v", bad, err)
		}
	}
	if a.Last() != "EMP0000006" {
		t.Errorf("Failed seed changed state: %s", a.Last())
	}
}

func TestAllocator_Exhausted(t *testing.T) {
	a := NewAllocator("EMP")
	a.Seed("EMP9999999")
	if _, err := a.Allocate(); !errors.Is(err, ErrIDSpaceExhausted) {
		t.Errorf("Expected ErrIDSpaceExhausted, got %v", err)
	}
}

func TestCache_OrderAndLookup(t *testing.T) {
	c := NewCache()
	c.Put("EMP0000002", Record{"regId": "EMP0000002"})
	c.Put("EMP0000010", Record{"regId": "EMP0000010"})
	c.Put("EMP0000001", Record{"regId": "EMP0000001"})

	list := c.Descending()
	var ids []string
	for _, rec := range list {
		ids = append(ids, rec["regId"].(string))
	}
	want := []string{"EMP0000010", "EMP0000002", "EMP0000001"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected %v, got %v", want, ids)
	}

	got, ok := c.Get("EMP0000002")
	if !ok || got["regId"] != "EMP0000002" {
		t.Errorf("Get mismatch: %v, %v", got, ok)
	}
	got["regId"] = "mutated"
	again, _ := c.Get("EMP0000002")
	if again["regId"] != "EMP0000002" {
		t.Error("Get should return a copy")
	}

	if !c.Delete("EMP0000002") || c.Delete("EMP0000002") {
		t.Error("Delete should report presence once")
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", c.Len())
	}
}

func TestCache_IsDuplicate(t *testing.T) {
	c := NewCache()
	c.Put("EMP0000001", Record{"email": "a@x.com"})
	c.Put("EMP0000002", Record{"name": "no email"})

	if !c.IsDuplicate("email", "a@x.com") {
		t.Error("Expected duplicate")
	}
	if c.IsDuplicate("email", "b@x.com") {
		t.Error("Unexpected duplicate")
	}
	if c.IsDuplicate("email", nil) {
		t.Error("Absent value should never be a duplicate")
	}
}

func TestLoadCache(t *testing.T) {
	p := newTestStore(t)
	p.Insert("employee", "EMP0000003", Record{"regId": "EMP0000003", "email": "c@x.com"})
	p.Insert("employee", "EMP0000001", Record{"regId": "EMP0000001", "email": "a@x.com"})
	p.Insert("employee", "orphan", Record{"email": "o@x.com"})

	c, err := LoadCache(p, "employee")
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 cached records, got %d", c.Len())
	}

	var maxID string
	c.Descend(func(id string, _ Record) bool {
		maxID = id
		return false
	})
	if maxID != "EMP0000003" {
		t.Errorf("Expected max id EMP0000003, got %s", maxID)
	}
}

func TestMigrate(t *testing.T) {
	src := newTestStore(t)
	dst := newTestStore(t)

	src.Insert("employee", "EMP0000001", Record{"regId": "EMP0000001", "email": "a@x.com"})
	src.Insert("employee", "EMP0000002", Record{"regId": "EMP0000002", "email": "b@x.com"})
	src.Insert("employee", "orphan", Record{"email": "o@x.com"})
	dst.Insert("employee", "EMP0000002", Record{"regId": "EMP0000002", "email": "kept@x.com"})

	copied, err := Migrate(src, dst, "employee")
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if copied != 1 {
		t.Errorf("Expected 1 copied record, got %d", copied)
	}

	got, err := dst.Get("employee", "EMP0000001")
	if err != nil || got["email"] != "a@x.com" {
		t.Errorf("Record was not copied: %v, %v", got, err)
	}
	kept, _ := dst.Get("employee", "EMP0000002")
	if kept["email"] != "kept@x.com" {
		t.Errorf("Existing record was overwritten: %v", kept)
	}
	if _, err := dst.Get("employee", "orphan"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Record without regId should not be copied, got %v", err)
	}
}
