package handler

// User-facing texts
const (
	MsgWelcome = `👋 Hi! I'm SmartZen, an AI assistant.

Send me any message and I'll answer it.
Tap "🎨 Create image" to turn your next message into a picture.`

	MsgAskImagePrompt  = "🎨 Describe the image you want to create."
	MsgContextCleared  = "🧹 Context cleared. Send me a new message."
	MsgEmptyPrompt     = "✍️ Please send a non-empty text message."
	MsgEmptyImageDesc  = "✍️ The image description is empty. Tap \"🎨 Create image\" and try again."
	MsgTextOnly        = "📝 I can only read text messages. Please type your question."
	MsgUnknownCommand  = "🤔 Unknown command. Use /start to see what I can do."
	MsgNotConfigured   = "❌ The AI service is not configured."
	MsgUnavailable     = "⚠️ The AI service is unavailable right now. Please try again later."
	MsgNoImage         = "😕 Could not generate the image. Try another description."
	MsgEmptyReply      = "🤷 The AI returned an empty answer. Try rephrasing your message."
	MsgImageLinkFormat = "🖼 Your image: %s"
	MsgError           = "⚠️ Something went wrong. Please try again later."
)
