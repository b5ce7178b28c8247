package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/artemshloyda/picturegen/internal/config"
)

// writeDef создаёт файл-описание в указанной директории.
func writeDef(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()

	writeDef(t, dir, "team.picture.yaml", "source: photos/team.jpg")
	writeDef(t, dir, filepath.Join("blog", "header.picture.yaml"), "external: https://example.com/a.jpg")
	writeDef(t, dir, "broken.picture.yaml", "width: 100") // нет источника
	writeDef(t, dir, "notes.txt", "не описание")
	writeDef(t, dir, filepath.Join(".hidden", "x.picture.yaml"), "source: a.jpg")
	writeDef(t, dir, filepath.Join(".picturegen", "y.picture.yaml"), "source: a.jpg")

	cfg := config.DefaultConfig()
	cfg.ContentDir = dir
	cfg.OutputDir = filepath.Join(dir, "out")
	s := New(cfg)

	defs, errs := s.Scan(context.Background())

	found := make(map[string]Definition)
	for def := range defs {
		found[def.RelPath] = def
	}
	if err := <-errs; err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(found) != 3 {
		t.Fatalf("Scan() found %d definitions, want 3: %v", len(found), found)
	}

	ok := found["team.picture.yaml"]
	if ok.Err != nil {
		t.Errorf("team: unexpected error %v", ok.Err)
	}
	if ok.Picture == nil || ok.Picture.Source != "photos/team.jpg" {
		t.Errorf("team: picture not parsed: %+v", ok.Picture)
	}
	if ok.Info.Size == 0 {
		t.Error("team: file info not collected")
	}

	nested := found[filepath.Join("blog", "header.picture.yaml")]
	if nested.Err != nil {
		t.Errorf("nested: unexpected error %v", nested.Err)
	}

	broken := found["broken.picture.yaml"]
	if broken.Err == nil {
		t.Error("broken: parse error expected")
	}
	if broken.Picture != nil {
		t.Error("broken: picture should be nil on error")
	}
}

func TestScanner_Scan_Cancelled(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 300; i++ {
		writeDef(t, dir, filepath.Join("a", "b", "c", "def"+string(rune('0'+i%10))+".picture.yaml"), "source: a.jpg")
	}

	cfg := config.DefaultConfig()
	cfg.ContentDir = dir
	cfg.OutputDir = filepath.Join(dir, "out")
	s := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	defs, _ := s.Scan(ctx)

	count := 0
	for range defs {
		count++
	}
	// Канал обязан закрыться после отмены контекста
	if count > 300 {
		t.Errorf("unexpected number of definitions after cancel: %d", count)
	}
}

func TestScanner_CountFiles(t *testing.T) {
	dir := t.TempDir()

	writeDef(t, dir, "a.picture.yaml", "source: a.jpg")
	writeDef(t, dir, filepath.Join("sub", "b.picture.yaml"), "source: b.jpg")
	writeDef(t, dir, "readme.md", "# docs")

	cfg := config.DefaultConfig()
	cfg.ContentDir = dir
	cfg.OutputDir = filepath.Join(dir, "out")
	s := New(cfg)

	count, err := s.CountFiles()
	if err != nil {
		t.Fatalf("CountFiles() = %v", err)
	}
	if count != 2 {
		t.Errorf("CountFiles() = %d, want 2", count)
	}
}
