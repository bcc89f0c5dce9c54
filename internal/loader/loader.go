// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package loader populates an engine.Store from the startup data
// directory: a plain-text options.txt whose first line is the current
// unix-seconds clock, and a data.zip archive of JSON files each shaped
// as {"accounts":[AccountJSON,...]}.
package loader

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/stremin/accountengine/internal/engine"
	"github.com/stremin/accountengine/internal/logging"
	"github.com/stremin/accountengine/internal/models"
)

const (
	optionsFile = "options.txt"
	dataArchive = "data.zip"
)

// Stats summarizes one Load call, logged once loading completes.
type Stats struct {
	Now      int32
	Files    int
	Accounts int64
}

// ReadNow reads the first line of <dataDir>/options.txt and parses it as
// the current unix-seconds clock the engine treats as "now" for premium
// and age calculations. A malformed or missing options.txt is a startup
// fault, not a recoverable error: the caller is expected to treat it as
// fatal, since corrupt startup input is the only condition worth
// crashing for.
func ReadNow(dataDir string) (int32, error) {
	f, err := os.Open(filepath.Join(dataDir, optionsFile))
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", optionsFile, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, fmt.Errorf("%s is empty", optionsFile)
	}
	line := strings.TrimSpace(scanner.Text())
	now, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %s first line %q: %w", optionsFile, line, err)
	}
	return int32(now), nil
}

// Load reads <dataDir>/data.zip and inserts every decoded account into
// st, in ascending filename order so a re-run is deterministic. Any
// malformed entry fails the whole load: a corrupt bulk data file is
// treated the same way as corrupt startup input elsewhere in this
// package.
func Load(dataDir string, st *engine.Store) (Stats, error) {
	var stats Stats

	r, err := zip.OpenReader(filepath.Join(dataDir, dataArchive))
	if err != nil {
		return stats, fmt.Errorf("open %s: %w", dataArchive, err)
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && strings.HasSuffix(f.Name, ".json") {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, f := range files {
		n, err := loadOne(f, st)
		if err != nil {
			return stats, fmt.Errorf("load %s: %w", f.Name, err)
		}
		stats.Files++
		stats.Accounts += int64(n)
		logging.Info().Str("file", f.Name).Int("accounts", n).Msg("loaded accounts file")
	}

	logging.Info().Int("files", stats.Files).Int64("accounts", stats.Accounts).Msg("bulk load complete")
	return stats, nil
}

func loadOne(f *zip.File, st *engine.Store) (int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, err
	}

	var batch models.AccountsJSON
	if err := json.Unmarshal(data, &batch); err != nil {
		return 0, fmt.Errorf("decode json: %w", err)
	}

	for i := range batch.Accounts {
		in := batch.Accounts[i].ToInsertInput()
		if err := st.Insert(in); err != nil {
			return 0, fmt.Errorf("insert account %d: %w", batch.Accounts[i].ID, err)
		}
	}
	return len(batch.Accounts), nil
}
