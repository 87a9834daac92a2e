package utils

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"
)

// RunLogEntry is one structured line of the pipeline run log.
type RunLogEntry struct {
	Timestamp string `json:"time"`
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Stage     string `json:"STAGE"`
	Status    string `json:"STATUS"`
}

// NewRunLogger opens (or appends to) the JSON run log under the output logs
// directory. The caller closes the returned file.
func NewRunLogger(logFilePath string) (*slog.Logger, *os.File, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logger, logFile, nil
}

// ParseRunLog reads a run log back into entries, skipping lines that are not
// valid JSON. A missing file yields no entries.
func ParseRunLog(logFilePath string) ([]RunLogEntry, error) {
	file, err := os.Open(logFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []RunLogEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry RunLogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}

// StageDurations pairs STARTED/COMPLETED entries per stage and returns the
// elapsed time of every stage that completed, in completion order.
func StageDurations(entries []RunLogEntry) ([]string, map[string]time.Duration) {
	started := make(map[string]time.Time)
	durations := make(map[string]time.Duration)
	var order []string

	for _, entry := range entries {
		ts, err := time.Parse(time.RFC3339Nano, entry.Timestamp)
		if err != nil {
			continue
		}
		switch entry.Status {
		case "STARTED":
			started[entry.Stage] = ts
		case "COMPLETED":
			begin, ok := started[entry.Stage]
			if !ok {
				continue
			}
			if _, seen := durations[entry.Stage]; !seen {
				order = append(order, entry.Stage)
			}
			durations[entry.Stage] = ts.Sub(begin)
		}
	}
	return order, durations
}
