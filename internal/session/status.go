package session

import "strings"

const maxStatusLen = 80

// Update is a progress snapshot for whatever is rendering the running task.
type Update struct {
	Percent int
	Status  string
}

// taskStatus formats decompile and compile progress, keeping the tail of
// long messages.
func taskStatus(prefix, msg string) string {
	if prefix == "Decompiling" || prefix == "Compiling" {
		msg = strings.ReplaceAll(msg, "Caching file", "File")
	}
	status := prefix + ": " + msg
	if runeLen(status) <= maxStatusLen {
		return status
	}
	keep := max(10, 75-runeLen(prefix))
	return prefix + ": ..." + tail(msg, keep)
}

func cacheStatus(msg string) string {
	return "Step 1/2: " + msg
}

func infoStatus(msg string) string {
	status := "Step 2/2: Reading texture info... " + msg
	if runeLen(status) <= maxStatusLen {
		return status
	}
	return "Step 2/2: ..." + tail(status, 74)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
