package session

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// ParseLog reads session records from an exported log. Both formats the
// tracker exports are accepted: a JSON array, or one JSON object per line.
// Malformed individual records are skipped rather than failing the batch;
// out-of-range hour and day values are clamped.
func ParseLog(r io.Reader) ([]Session, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var sessions []Session
		if err := json.Unmarshal([]byte(trimmed), &sessions); err != nil {
			return nil, err
		}
		return sanitize(sessions), nil
	}

	var sessions []Session
	scanner := bufio.NewScanner(strings.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var s Session
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			// One bad record must not invalidate the batch.
			continue
		}
		sessions = append(sessions, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sanitize(sessions), nil
}

// sanitize clamps per-record fields into their valid ranges and resolves the
// created_at date fallback.
func sanitize(sessions []Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Hour < 0 {
			s.Hour = 0
		}
		if s.Hour > 23 {
			s.Hour = 23
		}
		if s.DayOfWeek < 0 {
			s.DayOfWeek = 0
		}
		if s.DayOfWeek > 6 {
			s.DayOfWeek = 6
		}
		if s.Date == "" && !s.CreatedAt.IsZero() {
			s.Date = s.CreatedAt.Format(DateLayout)
		}
		out = append(out, s)
	}
	return out
}
