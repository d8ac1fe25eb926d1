package fitness

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fields returns the entry's data together with its "date" key.
func (e ProgressEntry) Fields() map[string]any {
	fields := cloneFields(e.Data)
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields["date"] = e.Date
	return fields
}

// FormatProgress renders a member's progress log as numbered entries with
// their fields in key order.
func FormatProgress(memberID string, entries []ProgressEntry) string {
	if len(entries) == 0 {
		return "No progress data found for this member or member does not exist."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Progress Data for Member %s:\n", memberID)
	for i, e := range entries {
		fmt.Fprintf(&b, "\nEntry %d - %s:\n", i+1, e.Date.Format(time.DateTime))
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			if k != "date" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, e.Data[k])
		}
	}
	return b.String()
}

func stamp(id string, at time.Time) (string, time.Time) {
	if id == "" {
		id = uuid.NewString()
	}
	if at.IsZero() {
		at = now()
	}
	return id, at
}

func cloneFields(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
