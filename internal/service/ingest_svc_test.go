package service

import (
	"os"
	"path/filepath"
	"testing"

	"etsy_bulk_v1_202608/internal/model"
)

// writeFile 在测试目录下创建带内容的文件
func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, []byte("not a real image"), 0o644); err != nil {
		t.Fatalf("写文件失败: %v", err)
	}
}

func newTestIngest(t *testing.T) *IngestService {
	t.Helper()
	svc, err := NewIngestService(t.TempDir())
	if err != nil {
		t.Fatalf("NewIngestService() error = %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func TestIngestDir_GroupingRules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/1.png")
	writeFile(t, root, "A/2.png")
	writeFile(t, root, "B/1.jpg")
	writeFile(t, root, "stray.png")

	svc := newTestIngest(t)
	result, err := svc.IngestDir(root)
	if err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}

	if len(result.Candidates) != 3 {
		t.Fatalf("候选数 = %d, want 3", len(result.Candidates))
	}

	byName := make(map[string]*model.ProductCandidate)
	for _, c := range result.Candidates {
		byName[c.FolderName] = c
	}

	if c := byName["A"]; c == nil || len(c.Images) != 2 {
		t.Errorf("候选 A 应有 2 张图片, got %+v", c)
	}
	if c := byName["B"]; c == nil || len(c.Images) != 1 {
		t.Errorf("候选 B 应有 1 张图片, got %+v", c)
	}
	// 根下散文件按文件名主干独立成组
	if c := byName["stray"]; c == nil || len(c.Images) != 1 {
		t.Errorf("散文件 stray 应独立成候选, got %+v", c)
	}
}

func TestIngestDir_DeepNestingUsesParentFolder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "collection/Sunset_Poster/main.png")
	writeFile(t, root, "collection/Sunset_Poster/alt.png")

	svc := newTestIngest(t)
	result, err := svc.IngestDir(root)
	if err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}

	if len(result.Candidates) != 1 {
		t.Fatalf("候选数 = %d, want 1", len(result.Candidates))
	}
	if got := result.Candidates[0].FolderName; got != "Sunset_Poster" {
		t.Errorf("FolderName = %q, want 直接父目录 Sunset_Poster", got)
	}
}

func TestIngest_IgnoresNonMedia(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/photo.png")
	writeFile(t, root, "A/readme.txt")
	writeFile(t, root, "A/.DS_Store")

	svc := newTestIngest(t)
	result, err := svc.IngestDir(root)
	if err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("候选数 = %d, want 1", len(result.Candidates))
	}
	if got := len(result.Candidates[0].Images); got != 1 {
		t.Errorf("图片数 = %d, want 1（非媒体文件被忽略）", got)
	}
}

func TestIngest_VideoGoesToVideoList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/photo.png")
	writeFile(t, root, "A/demo.mp4")

	svc := newTestIngest(t)
	result, err := svc.IngestDir(root)
	if err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}
	cand := result.Candidates[0]
	if len(cand.Images) != 1 || len(cand.Videos) != 1 {
		t.Errorf("images=%d videos=%d, want 1/1", len(cand.Images), len(cand.Videos))
	}
}

func TestIngest_VideoOnlyGroupDropped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/demo.mp4")

	svc := newTestIngest(t)
	_, err := svc.IngestDir(root)
	if err != ErrNoProducts {
		t.Errorf("纯视频目录应返回 ErrNoProducts, got %v", err)
	}
}

func TestIngest_OversizeImageSkippedWithWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/ok.png")
	writeFile(t, root, "A/huge.png")
	// 稀疏文件即可触发大小上限
	if err := os.Truncate(filepath.Join(root, "A/huge.png"), model.MaxImageBytes+1); err != nil {
		t.Fatalf("扩展文件失败: %v", err)
	}

	svc := newTestIngest(t)
	result, err := svc.IngestDir(root)
	if err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}

	if got := len(result.Candidates[0].Images); got != 1 {
		t.Errorf("图片数 = %d, want 1（超大图被跳过）", got)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("警告数 = %d, want 1", len(result.Warnings))
	}
}

func TestIngest_EmptyInput(t *testing.T) {
	svc := newTestIngest(t)
	if _, err := svc.Ingest(nil); err != ErrNoProducts {
		t.Errorf("空输入应返回 ErrNoProducts, got %v", err)
	}
}

func TestIngest_UniqueCandidateIDs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "A/1.png")
	writeFile(t, root, "B/1.png")
	writeFile(t, root, "C/1.png")

	svc := newTestIngest(t)
	result, err := svc.IngestDir(root)
	if err != nil {
		t.Fatalf("IngestDir() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range result.Candidates {
		if seen[c.ID] {
			t.Errorf("候选 ID 重复: %s", c.ID)
		}
		seen[c.ID] = true
	}
}
