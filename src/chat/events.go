package chat

// Event names pushed over the real-time channel.
const (
	EventNewMessage         = "newMessage"
	EventMessageSeen        = "messageSeen"
	EventTyping             = "typing"
	EventOnlineUsers        = "onlineUsers"
	EventInvitationReceived = "invitationReceived"
	EventInvitationAccepted = "invitationAccepted"
)
