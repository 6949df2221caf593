package vfs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testFixture = `
root:
  type: dir
  children:
    documents:
      type: dir
      children:
        report.txt:
          type: file
          content: "classified"
    readme.txt:
      type: file
      content: "hello"
`

func TestListRootIsSorted(t *testing.T) {
	tree, err := Load([]byte(testFixture))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	names, err := tree.List([]string{"~"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if diff := cmp.Diff([]string{"documents", "readme.txt"}, names); diff != "" {
		t.Fatalf("root listing mismatch (-want +got):\n%s", diff)
	}
}

func TestListSubdirectory(t *testing.T) {
	tree, err := Load([]byte(testFixture))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	names, err := tree.List([]string{"~", "documents"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(names) != 1 || names[0] != "report.txt" {
		t.Fatalf("listing = %v", names)
	}
}

func TestListMissingPathErrors(t *testing.T) {
	tree, err := Load([]byte(testFixture))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if _, err := tree.List([]string{"~", "nope"}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestListFileErrors(t *testing.T) {
	tree, err := Load([]byte(testFixture))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if _, err := tree.List([]string{"~", "readme.txt"}); err == nil {
		t.Fatal("expected error when listing a file")
	}
}

func TestLoadRejectsRootlessFixture(t *testing.T) {
	if _, err := Load([]byte("other: 1")); err == nil {
		t.Fatal("expected error for fixture without root")
	}
}

func TestDefaultFixtureLoads(t *testing.T) {
	tree, err := Default()
	if err != nil {
		t.Fatalf("Default error: %v", err)
	}
	names, err := tree.List(nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("embedded fixture has an empty root")
	}
}
