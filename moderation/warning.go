package moderation

import "fmt"

// TimeoutReason is attached to the timeout call as the audit-log reason.
const TimeoutReason = "Posted message without media in media-only channel"

// WarningKind selects which notification text to build.
type WarningKind uint8

const (
	// WarningTimeout tells a user why they were timed out.
	WarningTimeout WarningKind = iota
	// WarningAdminNotice tells an administrator their message was removed
	// without a timeout.
	WarningAdminNotice
)

// WarningText builds the direct-message text for a removed message.
func WarningText(kind WarningKind, timeoutMinutes int, channelID string) string {
	switch kind {
	case WarningAdminNotice:
		return fmt.Sprintf(
			"Your message in <#%s> was removed because it had no image, media file or thread. "+
				"No timeout was applied since you are an administrator.",
			channelID)
	default:
		return fmt.Sprintf(
			"You were timed out for %d minutes for posting without media in <#%s>. "+
				"Messages in that channel must include an image, media file or thread.",
			timeoutMinutes, channelID)
	}
}
