package bot

import (
	"context"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/garyellow/groundwater-bot-go/internal/ctxutil"
	"github.com/garyellow/groundwater-bot-go/internal/lineutil"
)

// Metric endpoints for LINE traffic.
const (
	EndpointLineText     = "line_text"
	EndpointLineLocation = "line_location"
)

// ProcessMessage answers a LINE message event in language. Text and location
// messages are answered with one text message carrying quick replies; other
// types are ignored.
func (p *Processor) ProcessMessage(ctx context.Context, event webhook.MessageEvent, language string) []messaging_api.MessageInterface {
	if userID := GetUserID(event.Source); userID != "" {
		ctx = ctxutil.WithUserID(ctx, userID)
	}

	start := time.Now()
	var (
		answer   Answer
		endpoint string
	)
	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		if msg.Text == "" {
			return nil
		}
		endpoint = EndpointLineText
		answer = p.Query(ctx, msg.Text, language)
	case webhook.LocationMessageContent:
		endpoint = EndpointLineLocation
		answer = p.QueryByLocation(ctx, msg.Latitude, msg.Longitude, language)
	default:
		p.logger.DebugContext(ctx, "Ignoring message type", "type", event.Message.GetType())
		return nil
	}
	p.Observe(endpoint, answer, start)

	return []messaging_api.MessageInterface{
		lineutil.NewTextMessageWithQuickReply(answer.Reply, quickReplies(answer)...),
	}
}

// quickReplies always offers the location picker. After a record is shown it
// also offers the other views of the same location.
func quickReplies(a Answer) []lineutil.QuickReplyItem {
	items := []lineutil.QuickReplyItem{
		{Action: lineutil.NewLocationAction("📍 Share location")},
	}
	if a.Location == "" {
		return items
	}
	return append(items,
		lineutil.QuickReplyItem{Action: lineutil.NewMessageAction("📏 Level", a.Location+" level")},
		lineutil.QuickReplyItem{Action: lineutil.NewMessageAction("💧 Quality", a.Location+" quality")},
		lineutil.QuickReplyItem{Action: lineutil.NewMessageAction("📊 Status", a.Location+" status")},
	)
}
