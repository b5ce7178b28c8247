package storage

import (
	"path/filepath"
	"testing"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state.sqlite"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testFileInfo() FileInfo {
	return FileInfo{Path: "/content/team.picture.yaml", Size: 120, Mtime: 1700000000}
}

func TestStorage_TryStartRender(t *testing.T) {
	s := testStorage(t)
	info := testFileInfo()

	result, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatalf("TryStartRender() = %v", err)
	}
	if !result.Started {
		t.Fatal("first TryStartRender should start")
	}
	if result.RenderID == 0 {
		t.Error("RenderID not set")
	}
}

func TestStorage_SkipCompleted(t *testing.T) {
	s := testStorage(t)
	info := testFileInfo()

	first, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.FinalizeRenderOK(first.RenderID, "/out/team.html"); err != nil {
		t.Fatal(err)
	}

	second, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatalf("TryStartRender() = %v", err)
	}
	if second.Started {
		t.Error("completed render should be skipped")
	}
	if second.ExistingDstPath != "/out/team.html" {
		t.Errorf("ExistingDstPath = %q", second.ExistingDstPath)
	}
}

func TestStorage_RetryFailed(t *testing.T) {
	s := testStorage(t)
	info := testFileInfo()

	first, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.FinalizeRenderFailed(first.RenderID, "ошибка записи"); err != nil {
		t.Fatal(err)
	}

	second, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatalf("TryStartRender() = %v", err)
	}
	if !second.Started {
		t.Error("failed render should be retried")
	}
	if second.RenderID == first.RenderID {
		t.Error("retry should create a new record")
	}
}

func TestStorage_SkipInProgress(t *testing.T) {
	s := testStorage(t)
	info := testFileInfo()

	if _, err := s.TryStartRender(info, "{}", "hash1"); err != nil {
		t.Fatal(err)
	}

	second, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatalf("TryStartRender() = %v", err)
	}
	if second.Started {
		t.Error("in_progress render should be skipped")
	}
}

func TestStorage_ParamsChangeRestartsRender(t *testing.T) {
	s := testStorage(t)
	info := testFileInfo()

	first, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.FinalizeRenderOK(first.RenderID, "/out/team.html"); err != nil {
		t.Fatal(err)
	}

	// Другой params_hash - другая запись, генерация начинается заново
	second, err := s.TryStartRender(info, "{}", "hash2")
	if err != nil {
		t.Fatalf("TryStartRender() = %v", err)
	}
	if !second.Started {
		t.Error("render with changed params should start")
	}
}

func TestStorage_InvalidateBySrcPath(t *testing.T) {
	s := testStorage(t)
	info := testFileInfo()

	first, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.FinalizeRenderOK(first.RenderID, "/out/team.html"); err != nil {
		t.Fatal(err)
	}

	if err := s.InvalidateBySrcPath(info.Path); err != nil {
		t.Fatalf("InvalidateBySrcPath() = %v", err)
	}

	second, err := s.TryStartRender(info, "{}", "hash1")
	if err != nil {
		t.Fatal(err)
	}
	if !second.Started {
		t.Error("invalidated render should start again")
	}
}

func TestStorage_CleanupInProgress(t *testing.T) {
	s := testStorage(t)

	if _, err := s.TryStartRender(testFileInfo(), "{}", "hash1"); err != nil {
		t.Fatal(err)
	}

	cleaned, err := s.CleanupInProgress()
	if err != nil {
		t.Fatalf("CleanupInProgress() = %v", err)
	}
	if cleaned != 1 {
		t.Errorf("CleanupInProgress() = %d, want 1", cleaned)
	}

	_, _, failed, inProgress, err := s.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if failed != 1 || inProgress != 0 {
		t.Errorf("stats after cleanup: failed=%d inProgress=%d", failed, inProgress)
	}
}

func TestStorage_GetStats(t *testing.T) {
	s := testStorage(t)

	okRender, err := s.TryStartRender(FileInfo{Path: "/c/a.picture.yaml", Size: 1, Mtime: 1}, "{}", "h")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.FinalizeRenderOK(okRender.RenderID, "/out/a.html")

	failedRender, err := s.TryStartRender(FileInfo{Path: "/c/b.picture.yaml", Size: 2, Mtime: 2}, "{}", "h")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.FinalizeRenderFailed(failedRender.RenderID, "ошибка")

	if _, err := s.TryStartRender(FileInfo{Path: "/c/c.picture.yaml", Size: 3, Mtime: 3}, "{}", "h"); err != nil {
		t.Fatal(err)
	}

	total, ok, failed, inProgress, err := s.GetStats()
	if err != nil {
		t.Fatalf("GetStats() = %v", err)
	}
	if total != 3 || ok != 1 || failed != 1 || inProgress != 1 {
		t.Errorf("GetStats() = %d/%d/%d/%d, want 3/1/1/1", total, ok, failed, inProgress)
	}
}
