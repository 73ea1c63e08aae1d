package bot

import "github.com/line/line-bot-sdk-go/v8/linebot/webhook"

// GetUserID extracts the user ID from a LINE source, whatever the chat type.
// It returns "" when the source carries no user.
func GetUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}
