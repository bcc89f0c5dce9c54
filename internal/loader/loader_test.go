// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package loader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stremin/accountengine/internal/engine"
)

func writeOptions(t *testing.T, dir string, now string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, optionsFile), []byte(now+"\n"), 0o644); err != nil {
		t.Fatalf("write options.txt: %v", err)
	}
}

func writeDataZip(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, dataArchive))
	if err != nil {
		t.Fatalf("create data.zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func TestReadNowParsesFirstLine(t *testing.T) {
	dir := t.TempDir()
	writeOptions(t, dir, "1420070400")

	now, err := ReadNow(dir)
	if err != nil {
		t.Fatalf("ReadNow failed: %v", err)
	}
	if now != 1420070400 {
		t.Errorf("now = %d, want 1420070400", now)
	}
}

func TestReadNowRejectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadNow(dir); err == nil {
		t.Error("ReadNow with no options.txt = nil error, want error")
	}
}

func TestReadNowRejectsUnparseableLine(t *testing.T) {
	dir := t.TempDir()
	writeOptions(t, dir, "not-a-number")
	if _, err := ReadNow(dir); err == nil {
		t.Error("ReadNow with unparseable line = nil error, want error")
	}
}

func TestLoadInsertsAccountsInFilenameOrder(t *testing.T) {
	dir := t.TempDir()
	writeDataZip(t, dir, map[string]string{
		"accounts_2.json": `{"accounts":[{"id":2,"email":"b@example.com","sex":"m","status":"free","birth":0,"joined":0}]}`,
		"accounts_1.json": `{"accounts":[{"id":1,"email":"a@example.com","sex":"f","status":"free","birth":0,"joined":0}]}`,
	})

	st := engine.NewStore(10, 0)
	stats, err := Load(dir, st)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if stats.Files != 2 || stats.Accounts != 2 {
		t.Errorf("stats = %+v, want Files=2 Accounts=2", stats)
	}
	if st.Get(1) == nil || st.Get(2) == nil {
		t.Error("Load did not insert both accounts")
	}
}

func TestLoadRejectsMalformedEntry(t *testing.T) {
	dir := t.TempDir()
	writeDataZip(t, dir, map[string]string{
		"accounts_1.json": `{"accounts":[{"id":1,"email":"a@example.com","sex":"bogus","status":"free","birth":0,"joined":0}]}`,
	})

	st := engine.NewStore(10, 0)
	if _, err := Load(dir, st); err == nil {
		t.Error("Load with invalid sex enum = nil error, want error")
	}
}

func TestLoadIgnoresNonJSONEntries(t *testing.T) {
	dir := t.TempDir()
	writeDataZip(t, dir, map[string]string{
		"README.txt":      "not json",
		"accounts_1.json": `{"accounts":[{"id":1,"email":"a@example.com","sex":"f","status":"free","birth":0,"joined":0}]}`,
	})

	st := engine.NewStore(10, 0)
	stats, err := Load(dir, st)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if stats.Files != 1 || stats.Accounts != 1 {
		t.Errorf("stats = %+v, want Files=1 Accounts=1", stats)
	}
}
