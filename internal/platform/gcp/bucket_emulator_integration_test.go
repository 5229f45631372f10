package gcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

func TestImageBucketEmulatorUploadDelete(t *testing.T) {
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("RUN_GCS_EMULATOR_INTEGRATION")), "true") {
		t.Skip("set RUN_GCS_EMULATOR_INTEGRATION=true to run emulator integration tests")
	}
	emulatorHost := strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/")
	if emulatorHost == "" {
		emulatorHost = "http://127.0.0.1:4443"
	}
	if !isEmulatorReachable(emulatorHost) {
		t.Skipf("storage emulator not reachable at %s", emulatorHost)
	}

	bucketName := fmt.Sprintf("wardrobe-it-%d", time.Now().UnixNano())
	createBucketIfMissing(t, emulatorHost, bucketName)
	t.Setenv("STORAGE_EMULATOR_HOST", emulatorHost)

	bucket, err := NewImageBucket(context.Background(), logger.Nop(), StorageConfig{
		Mode:         StorageModeEmulator,
		Bucket:       bucketName,
		EmulatorHost: emulatorHost,
	})
	if err != nil {
		t.Fatalf("NewImageBucket: %v", err)
	}

	ctx := context.Background()
	key := "items/it/photo.png"
	if err := bucket.Upload(ctx, key, "image/png", strings.NewReader("png-bytes")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	body, status := fetch(t, bucket.PublicURL(key))
	if status != http.StatusOK || body != "png-bytes" {
		t.Fatalf("public url: status=%d body=%q", status, body)
	}

	if err := bucket.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, status := fetch(t, bucket.PublicURL(key)); status != http.StatusNotFound {
		t.Fatalf("after delete: want 404 got=%d", status)
	}
	if err := bucket.Delete(ctx, key); err != nil {
		t.Fatalf("Delete of missing object: %v", err)
	}
}

func isEmulatorReachable(emulatorHost string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(emulatorHost + "/storage/v1/b?project=local-dev")
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 500
}

func createBucketIfMissing(t *testing.T, emulatorHost, bucket string) {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"name": bucket})
	if err != nil {
		t.Fatalf("json.Marshal(bucket): %v", err)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(emulatorHost+"/storage/v1/b?project=local-dev", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("create bucket %q: %v", bucket, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusConflict {
		return
	}
	b, _ := io.ReadAll(resp.Body)
	t.Fatalf("create bucket %q failed: status=%d body=%s", bucket, resp.StatusCode, strings.TrimSpace(string(b)))
}

func fetch(t *testing.T, url string) (string, int) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b), resp.StatusCode
}
